// Package ledger derives every money and quantity figure for an order
// from its item list, payment history and delivery history. All functions
// are pure: a figure is always recomputable from the Order value alone,
// there is no accumulator state anywhere.
package ledger

import "onswipes/internal/models"

// BalanceTolerance absorbs floating-point rounding when checking a
// payment against the outstanding balance. Amounts up to this much over
// the balance are still accepted.
const BalanceTolerance = 0.1

// OrderTotal returns the order's grand total verbatim. It is computed
// once when the order is created (subTotal scaled by VAT) and never
// re-derived from the items, so historical pricing survives later edits.
func OrderTotal(o models.Order) float64 {
	return o.Financials.TotalAmount
}

// TotalPaid sums the legacy down-payment field and every payment history
// entry. Negative entries (refunds/corrections) subtract naturally.
func TotalPaid(o models.Order) float64 {
	total := o.Financials.DownPayment
	for _, p := range o.PaymentHistory {
		total += p.Amount
	}
	return total
}

// Balance is the amount still owed. Negative means overpayment; it is
// never clamped.
func Balance(o models.Order) float64 {
	return OrderTotal(o) - TotalPaid(o)
}

// VATAmount is the VAT portion of the grand total.
func VATAmount(o models.Order) float64 {
	return o.Financials.TotalAmount - o.Financials.SubTotal
}

func ItemDeliveredQty(item models.OrderItem) int {
	qty := 0
	for _, d := range item.Deliveries {
		qty += d.Quantity
	}
	return qty
}

func OrderTotalQty(o models.Order) int {
	qty := 0
	for _, item := range o.Items {
		qty += item.Quantity
	}
	return qty
}

func OrderDeliveredQty(o models.Order) int {
	qty := 0
	for _, item := range o.Items {
		qty += ItemDeliveredQty(item)
	}
	return qty
}

// DeliveryProgress returns the delivered percentage, clamped to 100 even
// when more was delivered than ordered. An order with no quantity at all
// reads as 0%.
func DeliveryProgress(o models.Order) float64 {
	total := OrderTotalQty(o)
	if total == 0 {
		return 0
	}
	progress := float64(OrderDeliveredQty(o)) / float64(total) * 100
	if progress > 100 {
		return 100
	}
	return progress
}
