package reports

import (
	"testing"
	"time"

	"onswipes/internal/models"
)

func orderWith(status models.OrderStatus, qty, delivered int, total float64) models.Order {
	var deliveries []models.Delivery
	if delivered > 0 {
		deliveries = []models.Delivery{{ID: "d1", Quantity: delivered}}
	}
	return models.Order{
		Status: status,
		Items: []models.OrderItem{
			{ID: "i1", Quantity: qty, Deliveries: deliveries},
		},
		Financials: models.Financials{Currency: models.CurrencyGBP, TotalAmount: total},
	}
}

func TestDashboardRemainingPerStatus(t *testing.T) {
	orders := []models.Order{
		orderWith(models.StatusPending, 10000, 0, 540),
		orderWith(models.StatusInProduction, 20000, 5000, 1080),
		orderWith(models.StatusInTransit, 8000, 1000, 400),
		orderWith(models.StatusDelivered, 5000, 5000, 300),
	}

	stats := Dashboard(orders)
	if stats.TotalOrders != 4 {
		t.Fatalf("TotalOrders = %d, want 4", stats.TotalOrders)
	}
	if stats.TotalItems != 43000 || stats.DeliveredItems != 11000 || stats.RemainingItems != 32000 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.Pending != 10000 {
		t.Fatalf("Pending = %d, want 10000", stats.Pending)
	}
	if stats.InProduction != 15000 {
		t.Fatalf("InProduction = %d, want 15000", stats.InProduction)
	}
	if stats.InTransit != 7000 {
		t.Fatalf("InTransit = %d, want 7000", stats.InTransit)
	}
}

func TestTopEssencesRankingAndLimit(t *testing.T) {
	essence := func(name string, qty int) models.Order {
		return models.Order{Items: []models.OrderItem{
			{ID: "i", Quantity: qty, Specs: models.ProductSpecs{EssenceName: name}},
		}}
	}
	orders := []models.Order{
		essence("Limon", 5000),
		essence("Lavanta", 20000),
		essence("Limon", 10000),
		essence("Okyanus", 8000),
		essence("Bambu", 1000),
		essence("Dove", 2000),
		essence("", 300),
	}

	top := TopEssences(orders, 5)
	if len(top) != 5 {
		t.Fatalf("len = %d, want 5", len(top))
	}
	if top[0].Name != "Lavanta" || top[0].Quantity != 20000 {
		t.Fatalf("top[0] = %+v, want Lavanta 20000", top[0])
	}
	if top[1].Name != "Limon" || top[1].Quantity != 15000 {
		t.Fatalf("top[1] = %+v, want Limon 15000 (summed)", top[1])
	}
	for _, e := range top {
		if e.Name == "Belirsiz" {
			t.Fatal("unnamed essence should be cut by the top-5 limit here")
		}
	}
}

func TestRevenueTrendBucketsAcrossYearBoundary(t *testing.T) {
	now := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{OrderDate: time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC),
			Financials: models.Financials{Currency: models.CurrencyGBP, TotalAmount: 540}},
		{OrderDate: time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC),
			Financials: models.Financials{Currency: models.CurrencyEUR, TotalAmount: 300}},
		{OrderDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Financials: models.Financials{Currency: models.CurrencyGBP, TotalAmount: 100}},
		// Outside the window entirely.
		{OrderDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Financials: models.Financials{Currency: models.CurrencyGBP, TotalAmount: 9999}},
	}

	points := RevenueTrend(orders, now, 6)
	if len(points) != 6 {
		t.Fatalf("len = %d, want 6", len(points))
	}
	if points[0].Year != 2024 || points[0].Month != time.September {
		t.Fatalf("points[0] = %+v, want Sep 2024", points[0])
	}
	if points[5].Year != 2025 || points[5].Month != time.February {
		t.Fatalf("points[5] = %+v, want Feb 2025", points[5])
	}

	// December sums both orders, currency-blind.
	if points[3].Revenue != 840 {
		t.Fatalf("Dec revenue = %v, want 840", points[3].Revenue)
	}
	if points[5].Revenue != 100 {
		t.Fatalf("Feb revenue = %v, want 100", points[5].Revenue)
	}
}

func TestProductionAndShippingFilters(t *testing.T) {
	orders := []models.Order{
		orderWith(models.StatusPending, 1, 0, 1),
		orderWith(models.StatusInProduction, 1, 0, 1),
		orderWith(models.StatusInTransit, 1, 0, 1),
		orderWith(models.StatusShipped, 1, 0, 1),
		orderWith(models.StatusPartial, 1, 0, 1),
		orderWith(models.StatusDelivered, 1, 1, 1),
		orderWith(models.StatusDraft, 1, 0, 1),
	}

	if got := len(ProductionQueue(orders)); got != 2 {
		t.Fatalf("ProductionQueue len = %d, want 2", got)
	}
	if got := len(ShippingList(orders)); got != 3 {
		t.Fatalf("ShippingList len = %d, want 3", got)
	}
}

func TestReceivables(t *testing.T) {
	paid := orderWith(models.StatusDelivered, 1, 1, 540)
	paid.PaymentHistory = []models.PaymentTransaction{{ID: "p1", Amount: 540}}
	open := orderWith(models.StatusPending, 1, 0, 300)
	open.PaymentHistory = []models.PaymentTransaction{{ID: "p2", Amount: 100}}

	rows, outstanding := Receivables([]models.Order{paid, open})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if !rows[0].Settled || rows[0].Balance != 0 {
		t.Fatalf("settled order row wrong: %+v", rows[0])
	}
	if rows[1].Settled || rows[1].Balance != 200 {
		t.Fatalf("open order row wrong: %+v", rows[1])
	}
	if outstanding != 200 {
		t.Fatalf("outstanding = %v, want 200", outstanding)
	}
}
