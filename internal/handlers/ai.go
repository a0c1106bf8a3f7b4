package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"onswipes/internal/ai"
)

type suggestSpecsRequest struct {
	Description string `json:"description" binding:"required"`
}

// SuggestSpecs asks the assistant for technical specs matching a
// free-text product description. 503 when the feature is not configured.
func SuggestSpecs(client *ai.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req suggestSpecsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if strings.TrimSpace(req.Description) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		suggestion, err := client.SuggestSpecs(ctx, req.Description)
		if err != nil {
			if errors.Is(err, ai.ErrUnavailable) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI özelliği yapılandırılmamış"})
				return
			}
			log.Println("[AI] [ERROR] suggestion failed:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "AI servisinden yanıt alınamadı"})
			return
		}

		c.JSON(http.StatusOK, suggestion)
	}
}

// AnalyzeOrder runs the pricing/risk review over a stored order.
func AnalyzeOrder(client *ai.Client, db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		order, status, err := findOrder(ctx, db, c.Param("id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		analysis, err := client.AnalyzeOrder(ctx, order)
		if err != nil {
			if errors.Is(err, ai.ErrUnavailable) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI özelliği yapılandırılmamış"})
				return
			}
			log.Println("[AI] [ERROR] analysis failed:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "AI servisinden yanıt alınamadı"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"analysis": analysis})
	}
}
