package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SchemaVersion is stamped on every persisted document so future layout
// changes can be migrated instead of force-reset via a storage key suffix.
const SchemaVersion = 1

type OrderStatus string

const (
	StatusDraft        OrderStatus = "draft"
	StatusPending      OrderStatus = "pending"
	StatusApproved     OrderStatus = "approved"
	StatusInProduction OrderStatus = "in_production"
	StatusInTransit    OrderStatus = "in_transit"
	StatusPartial      OrderStatus = "partial"
	StatusShipped      OrderStatus = "shipped"
	StatusDelivered    OrderStatus = "delivered"
)

// AllStatuses lists every selectable status. Transitions are not
// constrained: the status dropdown may jump anywhere. The only automatic
// transition is the delivery-entry rule in the ledger package.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusDraft,
		StatusPending,
		StatusApproved,
		StatusInProduction,
		StatusInTransit,
		StatusPartial,
		StatusShipped,
		StatusDelivered,
	}
}

func (s OrderStatus) Valid() bool {
	for _, known := range AllStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

// Delivery is one partial-shipment record. Entries are append-only.
type Delivery struct {
	ID       string    `bson:"id" json:"id"`
	Date     time.Time `bson:"date" json:"date"`
	Quantity int       `bson:"quantity" json:"quantity"`
	Note     string    `bson:"note,omitempty" json:"note,omitempty"`
}

// PaymentTransaction is a signed ledger entry against an order's balance.
// Positive amounts are payments received, negative amounts are
// refunds/corrections.
type PaymentTransaction struct {
	ID     string    `bson:"id" json:"id"`
	Date   time.Time `bson:"date" json:"date"`
	Amount float64   `bson:"amount" json:"amount"`
	Note   string    `bson:"note" json:"note"`
}

// OrderItem is a single ordered line. TotalPrice is fixed at creation
// time (quantity x unitPrice) and never re-derived, so historical pricing
// survives later spec edits.
type OrderItem struct {
	ID         string       `bson:"id" json:"id"`
	Specs      ProductSpecs `bson:"specs" json:"specs"`
	Quantity   int          `bson:"quantity" json:"quantity"`
	UnitPrice  float64      `bson:"unitPrice" json:"unitPrice"`
	TotalPrice float64      `bson:"totalPrice" json:"totalPrice"`
	Deliveries []Delivery   `bson:"deliveries" json:"deliveries"`
	ImageURL   string       `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Financials is the per-order money snapshot, computed when the order is
// created. All amounts are in the single Currency; no conversion happens
// anywhere.
type Financials struct {
	Currency    Currency `bson:"currency" json:"currency"`
	SubTotal    float64  `bson:"subTotal" json:"subTotal"`
	VATRate     float64  `bson:"vatRate" json:"vatRate"`
	TotalAmount float64  `bson:"totalAmount" json:"totalAmount"`
	DownPayment float64  `bson:"downPayment" json:"downPayment"`
}

// Order is the aggregate root. The client info is a snapshot copied at
// creation; editing the referenced customer later does not touch it.
type Order struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CustomerID            *primitive.ObjectID  `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Client                ClientInfo           `bson:"client" json:"client"`
	Items                 []OrderItem          `bson:"items" json:"items"`
	Financials            Financials           `bson:"financials" json:"financials"`
	OrderDate             time.Time            `bson:"orderDate" json:"orderDate"`
	EstimatedDeliveryDate time.Time            `bson:"estimatedDeliveryDate" json:"estimatedDeliveryDate"`
	Notes                 string               `bson:"notes,omitempty" json:"notes,omitempty"`
	Status                OrderStatus          `bson:"status" json:"status"`
	PaymentHistory        []PaymentTransaction `bson:"paymentHistory" json:"paymentHistory"`
	SchemaVersion         int                  `bson:"schemaVersion" json:"-"`
	CreatedAt             time.Time            `bson:"createdAt" json:"createdAt"`
}
