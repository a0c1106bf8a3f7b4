// Package ai wraps the external text-completion service. The whole
// feature is optional: without an API key every call returns
// ErrUnavailable and the surrounding order flow keeps working.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"onswipes/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrUnavailable marks the AI feature as switched off (no credential).
var ErrUnavailable = errors.New("ai service unavailable")

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

/* =========================
   WIRE TYPES
========================= */

type generateRequest struct {
	Contents          []content       `json:"contents"`
	SystemInstruction *content        `json:"systemInstruction,omitempty"`
	GenerationConfig  *generateConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	if !c.Enabled() {
		return "", ErrUnavailable
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai service returned %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty ai response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

/* =========================
   SPEC SUGGESTION
========================= */

// SpecSuggestion is the structured partial spec the model returns.
// Zero-valued fields mean "no opinion" and must not overwrite the
// caller's current values.
type SpecSuggestion struct {
	OuterMaterial    string  `json:"outerMaterial"`
	OuterWidth       float64 `json:"outerWidth"`
	OuterHeight      float64 `json:"outerHeight"`
	TowelGsm         int     `json:"towelGsm"`
	EssenceName      string  `json:"essenceName"`
	SuggestionReason string  `json:"suggestionReason"`
}

var specsSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"outerMaterial": {"type": "STRING", "description": "Örn: Triplex, PET/ALU/PE"},
		"outerWidth": {"type": "NUMBER", "description": "Genişlik cm"},
		"outerHeight": {"type": "NUMBER", "description": "Yükseklik cm"},
		"towelGsm": {"type": "NUMBER", "description": "Havlu gramajı"},
		"essenceName": {"type": "STRING", "description": "Koku tipi"},
		"suggestionReason": {"type": "STRING", "description": "Neden bu özellikler önerildi?"}
	},
	"required": ["outerMaterial", "towelGsm", "essenceName"]
}`)

// SuggestSpecs asks the model to propose technical specs for a free-text
// product description.
func (c *Client) SuggestSpecs(ctx context.Context, description string) (*SpecSuggestion, error) {
	prompt := fmt.Sprintf(
		"Bir ıslak mendil üreticisi için satış temsilcisi asistanısın.\n"+
			"Müşteri şu türde bir mendil istiyor: %q.\n"+
			"Buna uygun teknik özellikleri (ambalaj malzemesi, ölçüler, havlu gramajı vb.) tahmin et ve öner.\n"+
			"Sektör standartlarına uygun mantıklı varsayımlar yap.", description)

	text, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		SystemInstruction: &content{Parts: []part{{
			Text: "Sen uzman bir ambalaj ve kozmetik üretim danışmanısın. JSON formatında yanıt ver.",
		}}},
		GenerationConfig: &generateConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   specsSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	var suggestion SpecSuggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return nil, fmt.Errorf("malformed suggestion payload: %w", err)
	}
	return &suggestion, nil
}

// ApplySuggestion merges a suggestion into existing specs. Fields the
// model left empty keep their current values (merge, never replace).
func ApplySuggestion(specs models.ProductSpecs, s *SpecSuggestion) models.ProductSpecs {
	if s == nil {
		return specs
	}
	if s.OuterMaterial != "" {
		specs.OuterMaterial = s.OuterMaterial
	}
	if s.OuterWidth > 0 {
		specs.OuterDimensions.Width = s.OuterWidth
	}
	if s.OuterHeight > 0 {
		specs.OuterDimensions.Height = s.OuterHeight
	}
	if s.TowelGsm > 0 {
		specs.TowelGsm = s.TowelGsm
	}
	if s.EssenceName != "" {
		specs.EssenceName = s.EssenceName
	}
	return specs
}

/* =========================
   PROFITABILITY ANALYSIS
========================= */

type orderSummaryItem struct {
	Qty      int     `json:"qty"`
	Price    float64 `json:"price"`
	Material string  `json:"material"`
	Essence  string  `json:"essence"`
}

type orderSummary struct {
	Client      string             `json:"client"`
	TotalAmount float64            `json:"totalAmount"`
	Currency    models.Currency    `json:"currency"`
	Items       []orderSummaryItem `json:"items"`
}

// AnalyzeOrder sends a simplified order summary and returns free-form
// advisory text about pricing and technical risks.
func (c *Client) AnalyzeOrder(ctx context.Context, o models.Order) (string, error) {
	summary := orderSummary{
		Client:      o.Client.CompanyName,
		TotalAmount: o.Financials.TotalAmount,
		Currency:    o.Financials.Currency,
	}
	for _, item := range o.Items {
		summary.Items = append(summary.Items, orderSummaryItem{
			Qty:      item.Quantity,
			Price:    item.UnitPrice,
			Material: item.Specs.OuterMaterial,
			Essence:  item.Specs.EssenceName,
		})
	}

	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := strings.Join([]string{
		"Aşağıdaki sipariş detaylarını incele.",
		"1. Eksik veya riskli görünen bir teknik detay veya fiyatlandırma var mı?",
		"2. Sipariş notuna eklenmesi gereken profesyonel bir hatırlatma yaz.",
		"",
		"Sipariş Özeti:",
		string(summaryJSON),
	}, "\n")

	text, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "Analiz yapılamadı.", nil
	}
	return text, nil
}
