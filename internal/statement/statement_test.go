package statement

import (
	"strings"
	"testing"
	"time"

	"onswipes/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func oidFromByte(b byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = b
	return id
}

func statementFixture() (models.Customer, []models.Order) {
	customer := models.Customer{
		Info: models.ClientInfo{
			CompanyName:   "Grand Royal Hotel",
			ContactPerson: "Selin Demir",
			Phone:         "0212 200 0002",
		},
	}
	orders := []models.Order{
		{
			ID:        oidFromByte(1),
			OrderDate: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
			Financials: models.Financials{
				Currency:    models.CurrencyGBP,
				SubTotal:    450,
				VATRate:     20,
				TotalAmount: 540,
			},
			Items: []models.OrderItem{
				{ID: "i1", Quantity: 10000, UnitPrice: 0.045, TotalPrice: 450,
					Specs: models.ProductSpecs{EssenceName: "Lavanta"}},
			},
			PaymentHistory: []models.PaymentTransaction{
				{ID: "p1", Amount: 540, Note: "Bakiye Kapama"},
			},
		},
		{
			ID:        oidFromByte(2),
			OrderDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
			Financials: models.Financials{
				Currency:    models.CurrencyGBP,
				SubTotal:    250,
				VATRate:     20,
				TotalAmount: 300,
			},
			Items: []models.OrderItem{
				{ID: "i2", Quantity: 5000, UnitPrice: 0.05, TotalPrice: 250,
					Specs: models.ProductSpecs{EssenceName: "Limon"}},
			},
			PaymentHistory: []models.PaymentTransaction{
				{ID: "p2", Amount: 100, Note: "Peşinat"},
			},
		},
	}
	return customer, orders
}

func TestFinancialsGrandTotals(t *testing.T) {
	_, orders := statementFixture()
	f := Financials(orders)
	if f.TotalDebt != 840 {
		t.Fatalf("TotalDebt = %v, want 840", f.TotalDebt)
	}
	if f.TotalPaid != 640 {
		t.Fatalf("TotalPaid = %v, want 640", f.TotalPaid)
	}
	if f.Balance != 200 {
		t.Fatalf("Balance = %v, want 200", f.Balance)
	}
}

func TestRenderGrandTotalBlock(t *testing.T) {
	customer, orders := statementFixture()
	text := Render(customer, orders, time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC))

	for _, want := range []string{
		"Sayın Selin Demir (Grand Royal Hotel),",
		"15.03.2025 tarihli güncel hesap ekstreniz",
		"- Lavanta (10.000 ad): 450 GBP",
		"- Limon (5.000 ad): 250 GBP",
		"Ara Toplam: 450 | KDV: %20",
		"Genel Toplam: 540 GBP",
		"Durum: Ödenen 540 | Kalan 0 GBP",
		"Durum: Ödenen 100 | Kalan 200 GBP",
		"GENEL TOPLAM BORÇ: 840 GBP",
		"TOPLAM ÖDENEN: 640 GBP",
		"GÜNCEL BAKİYE: 200 GBP",
		"Saygılarımızla,\nOnsWipes Pro",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("statement missing %q:\n%s", want, text)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	customer, orders := statementFixture()
	asOf := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if Render(customer, orders, asOf) != Render(customer, orders, asOf) {
		t.Fatal("statement text is not byte-for-byte reproducible")
	}
}

func TestRenderNoOrders(t *testing.T) {
	customer, _ := statementFixture()
	text := Render(customer, nil, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	if !strings.Contains(text, "Kayıtlı sipariş bulunmamaktadır.") {
		t.Fatalf("empty-statement notice missing:\n%s", text)
	}
	if !strings.Contains(text, "GENEL TOPLAM BORÇ: 0 GBP") {
		t.Fatalf("zero grand total missing:\n%s", text)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{840, "840"},
		{1234.5, "1.234,5"},
		{0.045, "0,045"},
		{1000000, "1.000.000"},
		{-200, "-200"},
		{540.25, "540,25"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Fatalf("formatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
