package ledger

import (
	"errors"
	"time"

	"onswipes/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidQuantity = errors.New("delivery quantity must be greater than zero")
	ErrItemNotFound    = errors.New("order item not found")
)

// NewDelivery builds a delivery record with a fresh id.
func NewDelivery(date time.Time, quantity int, note string) models.Delivery {
	return models.Delivery{
		ID:       primitive.NewObjectID().Hex(),
		Date:     date,
		Quantity: quantity,
		Note:     note,
	}
}

// StatusAfterDelivery is the one automatic transition in the status
// machine: recording a shipment against an order that is still waiting
// (pending, in production or in transit) marks it partially delivered.
// Every other status is left alone, so a delivered or shipped order is
// not reverted by a late correction entry.
func StatusAfterDelivery(s models.OrderStatus) models.OrderStatus {
	switch s {
	case models.StatusPending, models.StatusInProduction, models.StatusInTransit:
		return models.StatusPartial
	}
	return s
}

// AddDelivery appends a shipment record to the given item and applies the
// status transition. Delivering more than was ordered is accepted;
// over-delivery is bookkeeping looseness the business tolerates. The
// input order is not mutated.
func AddDelivery(o models.Order, itemID string, d models.Delivery) (models.Order, error) {
	if d.Quantity <= 0 {
		return models.Order{}, ErrInvalidQuantity
	}

	idx := -1
	for i, item := range o.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Order{}, ErrItemNotFound
	}

	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)

	deliveries := make([]models.Delivery, len(items[idx].Deliveries), len(items[idx].Deliveries)+1)
	copy(deliveries, items[idx].Deliveries)
	items[idx].Deliveries = append(deliveries, d)

	o.Items = items
	o.Status = StatusAfterDelivery(o.Status)
	return o, nil
}
