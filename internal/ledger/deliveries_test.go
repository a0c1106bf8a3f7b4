package ledger

import (
	"errors"
	"testing"
	"time"

	"onswipes/internal/models"
)

var deliveryDate = time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

func TestAddDeliveryRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -5} {
		o := testOrder()
		_, err := AddDelivery(o, "item_1", models.Delivery{ID: "d1", Date: deliveryDate, Quantity: qty})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("qty=%d: expected ErrInvalidQuantity, got %v", qty, err)
		}
		if len(o.Items[0].Deliveries) != 0 {
			t.Fatalf("qty=%d: delivery list changed on rejected add", qty)
		}
	}
}

func TestAddDeliveryUnknownItem(t *testing.T) {
	_, err := AddDelivery(testOrder(), "nope", NewDelivery(deliveryDate, 100, ""))
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestAddDeliveryOverDeliveryAccepted(t *testing.T) {
	o := testOrder()
	o, err := AddDelivery(o, "item_1", NewDelivery(deliveryDate, 25000, ""))
	if err != nil {
		t.Fatalf("over-delivery rejected: %v", err)
	}
	if got := ItemDeliveredQty(o.Items[0]); got != 25000 {
		t.Fatalf("ItemDeliveredQty = %d, want 25000", got)
	}
	if got := DeliveryProgress(o); got != 100 {
		t.Fatalf("DeliveryProgress = %v, want 100 (clamped)", got)
	}
}

func TestStatusAfterDelivery(t *testing.T) {
	cases := []struct {
		in   models.OrderStatus
		want models.OrderStatus
	}{
		{models.StatusPending, models.StatusPartial},
		{models.StatusInProduction, models.StatusPartial},
		{models.StatusInTransit, models.StatusPartial},
		{models.StatusDraft, models.StatusDraft},
		{models.StatusApproved, models.StatusApproved},
		{models.StatusPartial, models.StatusPartial},
		{models.StatusShipped, models.StatusShipped},
		{models.StatusDelivered, models.StatusDelivered},
	}
	for _, tc := range cases {
		if got := StatusAfterDelivery(tc.in); got != tc.want {
			t.Fatalf("StatusAfterDelivery(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestAddDeliveryTransitionsStatus(t *testing.T) {
	for _, status := range []models.OrderStatus{models.StatusPending, models.StatusInProduction, models.StatusInTransit} {
		o := testOrder()
		o.Status = status
		o, err := AddDelivery(o, "item_1", NewDelivery(deliveryDate, 100, ""))
		if err != nil {
			t.Fatalf("status=%s: delivery rejected: %v", status, err)
		}
		if o.Status != models.StatusPartial {
			t.Fatalf("status=%s: got %s, want partial", status, o.Status)
		}
	}

	for _, status := range []models.OrderStatus{models.StatusShipped, models.StatusDelivered} {
		o := testOrder()
		o.Status = status
		o, err := AddDelivery(o, "item_1", NewDelivery(deliveryDate, 100, ""))
		if err != nil {
			t.Fatalf("status=%s: delivery rejected: %v", status, err)
		}
		if o.Status != status {
			t.Fatalf("status=%s: got %s, want unchanged", status, o.Status)
		}
	}
}

func TestAddDeliveryDoesNotMutateInput(t *testing.T) {
	o := testOrder()
	if _, err := AddDelivery(o, "item_1", NewDelivery(deliveryDate, 100, "")); err != nil {
		t.Fatalf("delivery rejected: %v", err)
	}
	if len(o.Items[0].Deliveries) != 0 {
		t.Fatal("input order deliveries mutated")
	}
	if o.Status != models.StatusPending {
		t.Fatalf("input order status mutated to %s", o.Status)
	}
}
