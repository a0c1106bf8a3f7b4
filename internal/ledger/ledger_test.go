package ledger

import (
	"math"
	"testing"
	"time"

	"onswipes/internal/models"
)

func testOrder() models.Order {
	return models.Order{
		Status: models.StatusPending,
		Financials: models.Financials{
			Currency:    models.CurrencyGBP,
			SubTotal:    450,
			VATRate:     20,
			TotalAmount: 540,
			DownPayment: 0,
		},
		Items: []models.OrderItem{
			{
				ID:         "item_1",
				Quantity:   10000,
				UnitPrice:  0.045,
				TotalPrice: 450,
				Deliveries: []models.Delivery{},
			},
		},
		OrderDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBalanceIdentity(t *testing.T) {
	o := testOrder()
	o.Financials.DownPayment = 50
	o.PaymentHistory = []models.PaymentTransaction{
		{ID: "p1", Amount: 100},
		{ID: "p2", Amount: -30},
		{ID: "p3", Amount: 12.5},
	}

	if got := TotalPaid(o); !almostEqual(got, 132.5) {
		t.Fatalf("TotalPaid = %v, want 132.5", got)
	}
	if got := Balance(o); !almostEqual(got, OrderTotal(o)-TotalPaid(o)) {
		t.Fatalf("Balance = %v, want OrderTotal - TotalPaid = %v", got, OrderTotal(o)-TotalPaid(o))
	}
}

func TestOrderTotalIsVerbatimSnapshot(t *testing.T) {
	o := testOrder()
	// Drift the item prices; the grand total must not follow.
	o.Items[0].UnitPrice = 99
	if got := OrderTotal(o); got != 540 {
		t.Fatalf("OrderTotal = %v, want the stored 540", got)
	}
}

func TestVATAmount(t *testing.T) {
	if got := VATAmount(testOrder()); !almostEqual(got, 90) {
		t.Fatalf("VATAmount = %v, want 90", got)
	}
}

func TestDeliveredQuantities(t *testing.T) {
	o := testOrder()
	o.Items[0].Deliveries = []models.Delivery{
		{ID: "d1", Quantity: 3000},
		{ID: "d2", Quantity: 2000},
	}
	o.Items = append(o.Items, models.OrderItem{ID: "item_2", Quantity: 5000})

	if got := ItemDeliveredQty(o.Items[0]); got != 5000 {
		t.Fatalf("ItemDeliveredQty = %d, want 5000", got)
	}
	if got := OrderTotalQty(o); got != 15000 {
		t.Fatalf("OrderTotalQty = %d, want 15000", got)
	}
	if got := OrderDeliveredQty(o); got != 5000 {
		t.Fatalf("OrderDeliveredQty = %d, want 5000", got)
	}
}

func TestDeliveryProgressZeroQuantityOrder(t *testing.T) {
	o := testOrder()
	o.Items = nil
	if got := DeliveryProgress(o); got != 0 {
		t.Fatalf("DeliveryProgress = %v, want 0 for empty order", got)
	}
}

func TestDeliveryProgressClampsAt100(t *testing.T) {
	o := testOrder()
	o.Items[0].Deliveries = []models.Delivery{{ID: "d1", Quantity: 12000}}
	if got := DeliveryProgress(o); got != 100 {
		t.Fatalf("DeliveryProgress = %v, want clamp to 100", got)
	}
}

// The worked scenario: 450 subtotal at 20 percent VAT, pay 162, reject 400,
// pay 378, then deliver half of the ordered quantity.
func TestOrderLifecycleScenario(t *testing.T) {
	o := testOrder()

	o, err := AddPayment(o, NewPayment(o.OrderDate, 162, "Peşinat"))
	if err != nil {
		t.Fatalf("first payment rejected: %v", err)
	}
	if got := TotalPaid(o); !almostEqual(got, 162) {
		t.Fatalf("TotalPaid = %v, want 162", got)
	}
	if got := Balance(o); !almostEqual(got, 378) {
		t.Fatalf("Balance = %v, want 378", got)
	}

	if _, err := AddPayment(o, NewPayment(o.OrderDate, 400, "")); err == nil {
		t.Fatal("expected 400 payment to be rejected against 378 balance")
	}

	o, err = AddPayment(o, NewPayment(o.OrderDate, 378, "Bakiye Kapama"))
	if err != nil {
		t.Fatalf("closing payment rejected: %v", err)
	}
	if got := Balance(o); !almostEqual(got, 0) {
		t.Fatalf("Balance = %v, want 0", got)
	}

	o, err = AddDelivery(o, "item_1", NewDelivery(o.OrderDate, 5000, ""))
	if err != nil {
		t.Fatalf("delivery rejected: %v", err)
	}
	if o.Status != models.StatusPartial {
		t.Fatalf("status = %s, want partial after delivery", o.Status)
	}
	if got := ItemDeliveredQty(o.Items[0]); got != 5000 {
		t.Fatalf("ItemDeliveredQty = %d, want 5000", got)
	}
	if got := DeliveryProgress(o); got != 50 {
		t.Fatalf("DeliveryProgress = %v, want 50", got)
	}
}
