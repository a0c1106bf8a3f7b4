package ledger

import (
	"errors"
	"fmt"
	"time"

	"onswipes/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrZeroAmount rejects a payment of exactly zero; the intent is
	// ambiguous (neither a payment nor a refund).
	ErrZeroAmount = errors.New("payment amount cannot be zero")

	ErrPaymentNotFound = errors.New("payment not found")
)

// ExceedsBalanceError is returned when a positive payment would push the
// recomputed balance below zero beyond the tolerance.
type ExceedsBalanceError struct {
	Allowable float64
	Currency  models.Currency
}

func (e ExceedsBalanceError) Error() string {
	return fmt.Sprintf("ödeme tutarı kalan bakiyeyi (%.2f %s) aşamaz", e.Allowable, e.Currency)
}

// NewPayment builds a payment entry with a fresh id. An empty note
// defaults to "Tahsilat" like the dashboard's payment form.
func NewPayment(date time.Time, amount float64, note string) models.PaymentTransaction {
	if note == "" {
		note = "Tahsilat"
	}
	return models.PaymentTransaction{
		ID:     primitive.NewObjectID().Hex(),
		Date:   date,
		Amount: amount,
		Note:   note,
	}
}

// AddPayment appends a payment to the order's history and returns the
// updated order. Positive amounts are checked against the outstanding
// balance (plus tolerance); negative amounts are refunds/corrections and
// only increase the balance, so they pass unchecked. The input order is
// not mutated.
func AddPayment(o models.Order, p models.PaymentTransaction) (models.Order, error) {
	if p.Amount == 0 {
		return models.Order{}, ErrZeroAmount
	}
	if p.Amount > 0 {
		allowable := Balance(o)
		if p.Amount > allowable+BalanceTolerance {
			return models.Order{}, ExceedsBalanceError{Allowable: allowable, Currency: o.Financials.Currency}
		}
	}

	history := make([]models.PaymentTransaction, len(o.PaymentHistory), len(o.PaymentHistory)+1)
	copy(history, o.PaymentHistory)
	o.PaymentHistory = append(history, p)
	return o, nil
}

// EditPayment rewrites an existing entry in place. The ceiling check adds
// the entry's original amount back first, so raising a 100 payment to 150
// is validated against balance+100, not the post-hoc balance. An empty
// note keeps the previous one.
func EditPayment(o models.Order, paymentID string, amount float64, date time.Time, note string) (models.Order, error) {
	if amount == 0 {
		return models.Order{}, ErrZeroAmount
	}

	idx := -1
	for i, p := range o.PaymentHistory {
		if p.ID == paymentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Order{}, ErrPaymentNotFound
	}

	if amount > 0 {
		allowable := Balance(o) + o.PaymentHistory[idx].Amount
		if amount > allowable+BalanceTolerance {
			return models.Order{}, ExceedsBalanceError{Allowable: allowable, Currency: o.Financials.Currency}
		}
	}

	history := make([]models.PaymentTransaction, len(o.PaymentHistory))
	copy(history, o.PaymentHistory)
	history[idx].Amount = amount
	history[idx].Date = date
	if note != "" {
		history[idx].Note = note
	}
	o.PaymentHistory = history
	return o, nil
}

// DeletePayment removes an entry unconditionally; the balance recomputes
// naturally on next read. Deleting an unknown id is a no-op.
func DeletePayment(o models.Order, paymentID string) models.Order {
	history := make([]models.PaymentTransaction, 0, len(o.PaymentHistory))
	for _, p := range o.PaymentHistory {
		if p.ID != paymentID {
			history = append(history, p)
		}
	}
	o.PaymentHistory = history
	return o
}
