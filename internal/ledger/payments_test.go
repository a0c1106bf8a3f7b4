package ledger

import (
	"errors"
	"testing"
	"time"

	"onswipes/internal/models"
)

var paymentDate = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

func TestAddPaymentZeroAmountRejected(t *testing.T) {
	_, err := AddPayment(testOrder(), models.PaymentTransaction{ID: "p1", Amount: 0})
	if !errors.Is(err, ErrZeroAmount) {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
}

func TestAddPaymentWithinToleranceAccepted(t *testing.T) {
	o := testOrder() // balance 540
	o, err := AddPayment(o, NewPayment(paymentDate, 540.05, ""))
	if err != nil {
		t.Fatalf("payment within tolerance rejected: %v", err)
	}
	if got := Balance(o); got > 0 {
		t.Fatalf("Balance = %v, want <= 0 after near-full payment", got)
	}
}

func TestAddPaymentOverBalanceRejected(t *testing.T) {
	o := testOrder()
	_, err := AddPayment(o, NewPayment(paymentDate, 540.2, ""))
	var exceeds ExceedsBalanceError
	if !errors.As(err, &exceeds) {
		t.Fatalf("expected ExceedsBalanceError, got %v", err)
	}
	if exceeds.Allowable != 540 || exceeds.Currency != models.CurrencyGBP {
		t.Fatalf("unexpected error payload: %+v", exceeds)
	}
}

func TestAddPaymentNegativeBypassesCeiling(t *testing.T) {
	o := testOrder()
	o.PaymentHistory = []models.PaymentTransaction{{ID: "p1", Amount: 540}}

	o, err := AddPayment(o, NewPayment(paymentDate, -1000, "Düzeltme"))
	if err != nil {
		t.Fatalf("refund rejected: %v", err)
	}
	if got := Balance(o); got != 1000 {
		t.Fatalf("Balance = %v, want 1000 after refund", got)
	}
}

func TestAddPaymentDefaultsNote(t *testing.T) {
	p := NewPayment(paymentDate, 10, "")
	if p.Note != "Tahsilat" {
		t.Fatalf("note = %q, want default Tahsilat", p.Note)
	}
	if p.ID == "" {
		t.Fatal("expected generated payment id")
	}
}

func TestAddPaymentDoesNotMutateInput(t *testing.T) {
	o := testOrder()
	o.PaymentHistory = []models.PaymentTransaction{{ID: "p1", Amount: 100}}

	if _, err := AddPayment(o, NewPayment(paymentDate, 50, "")); err != nil {
		t.Fatalf("payment rejected: %v", err)
	}
	if len(o.PaymentHistory) != 1 {
		t.Fatalf("input order history mutated, len = %d", len(o.PaymentHistory))
	}
}

func TestEditPaymentAddsOriginalBackToCeiling(t *testing.T) {
	o := testOrder()
	o.PaymentHistory = []models.PaymentTransaction{
		{ID: "p1", Date: paymentDate, Amount: 100, Note: "Peşinat"},
		{ID: "p2", Date: paymentDate, Amount: 440, Note: "Bakiye"},
	}
	// Balance is 0. Editing p1 up to 150 would require balance+100 >= 150.
	if _, err := EditPayment(o, "p1", 150, paymentDate, ""); err == nil {
		t.Fatal("expected edit beyond add-back ceiling to be rejected")
	}

	// Editing p1 down to 80 is always fine.
	edited, err := EditPayment(o, "p1", 80, paymentDate, "")
	if err != nil {
		t.Fatalf("edit within ceiling rejected: %v", err)
	}
	if got := Balance(edited); got != 20 {
		t.Fatalf("Balance = %v, want 20 after lowering payment", got)
	}
	if edited.PaymentHistory[0].Note != "Peşinat" {
		t.Fatalf("empty note should keep previous, got %q", edited.PaymentHistory[0].Note)
	}
}

func TestEditPaymentUnknownID(t *testing.T) {
	_, err := EditPayment(testOrder(), "missing", 10, paymentDate, "")
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestDeletePaymentRestoresBalanceExactly(t *testing.T) {
	o := testOrder()
	o.PaymentHistory = []models.PaymentTransaction{
		{ID: "p1", Amount: 162},
		{ID: "p2", Amount: 200},
	}
	before := Balance(o)

	o = DeletePayment(o, "p2")
	if got := Balance(o); !almostEqual(got, before+200) {
		t.Fatalf("Balance = %v, want %v after deleting 200 payment", got, before+200)
	}
	if len(o.PaymentHistory) != 1 || o.PaymentHistory[0].ID != "p1" {
		t.Fatalf("unexpected history after delete: %+v", o.PaymentHistory)
	}

	// Deleting an unknown id changes nothing.
	o = DeletePayment(o, "ghost")
	if len(o.PaymentHistory) != 1 {
		t.Fatalf("delete of unknown id should be a no-op, history = %+v", o.PaymentHistory)
	}
}
