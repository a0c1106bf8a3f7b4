// Package reports computes the read-only aggregates shown on the
// dashboard and in the printable reports. Everything here is a pure
// function over the full order collection.
package reports

import (
	"sort"
	"time"

	"onswipes/internal/ledger"
	"onswipes/internal/models"
)

// DashboardStats are the headline counters: per-status remaining
// quantities plus overall delivery totals.
type DashboardStats struct {
	TotalOrders    int `json:"totalOrders"`
	TotalItems     int `json:"totalItems"`
	DeliveredItems int `json:"deliveredItems"`
	RemainingItems int `json:"remainingItems"`
	Pending        int `json:"pending"`
	InProduction   int `json:"inProduction"`
	InTransit      int `json:"inTransit"`
}

func Dashboard(orders []models.Order) DashboardStats {
	var stats DashboardStats
	for _, o := range orders {
		totalQty := ledger.OrderTotalQty(o)
		deliveredQty := ledger.OrderDeliveredQty(o)
		remaining := totalQty - deliveredQty

		stats.TotalOrders++
		stats.TotalItems += totalQty
		stats.DeliveredItems += deliveredQty
		stats.RemainingItems += remaining

		switch o.Status {
		case models.StatusPending:
			stats.Pending += remaining
		case models.StatusInProduction:
			stats.InProduction += remaining
		case models.StatusInTransit:
			stats.InTransit += remaining
		}
	}
	return stats
}

type EssenceVolume struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TopEssences ranks essences by total ordered quantity, highest first.
// Items without an essence name land in the "Belirsiz" bucket. Ties are
// broken by name so the ranking is stable across runs.
func TopEssences(orders []models.Order, limit int) []EssenceVolume {
	byName := map[string]int{}
	for _, o := range orders {
		for _, item := range o.Items {
			name := item.Specs.EssenceName
			if name == "" {
				name = "Belirsiz"
			}
			byName[name] += item.Quantity
		}
	}

	ranked := make([]EssenceVolume, 0, len(byName))
	for name, qty := range byName {
		ranked = append(ranked, EssenceVolume{Name: name, Quantity: qty})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

type TrendPoint struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Revenue float64    `json:"revenue"`
}

// RevenueTrend buckets order grand totals into the trailing calendar
// months ending at now, oldest first. Amounts are summed without
// currency conversion; the business runs on a single currency in
// practice, so mixed-currency months are an accepted looseness.
func RevenueTrend(orders []models.Order, now time.Time, months int) []TrendPoint {
	points := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		points = append(points, TrendPoint{Year: m.Year(), Month: m.Month()})
	}

	for _, o := range orders {
		if o.OrderDate.IsZero() {
			continue
		}
		for i := range points {
			if points[i].Year == o.OrderDate.Year() && points[i].Month == o.OrderDate.Month() {
				points[i].Revenue += o.Financials.TotalAmount
				break
			}
		}
	}
	return points
}

// ProductionQueue lists orders waiting on the line: pending approval or
// already in production.
func ProductionQueue(orders []models.Order) []models.Order {
	return filterByStatus(orders, models.StatusPending, models.StatusInProduction)
}

// ShippingList lists orders with goods on the move, including partial
// deliveries.
func ShippingList(orders []models.Order) []models.Order {
	return filterByStatus(orders, models.StatusInTransit, models.StatusShipped, models.StatusPartial)
}

func filterByStatus(orders []models.Order, statuses ...models.OrderStatus) []models.Order {
	matched := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		for _, s := range statuses {
			if o.Status == s {
				matched = append(matched, o)
				break
			}
		}
	}
	return matched
}

// ReceivableRow is one line of the financial report: what each order is
// worth, what has been collected, and what remains.
type ReceivableRow struct {
	OrderID     string          `json:"orderId"`
	CompanyName string          `json:"companyName"`
	Total       float64         `json:"total"`
	Paid        float64         `json:"paid"`
	Balance     float64         `json:"balance"`
	Currency    models.Currency `json:"currency"`
	Settled     bool            `json:"settled"`
}

// Receivables builds the financial report rows plus the grand total
// still to collect (outstanding balances only, again currency-blind).
func Receivables(orders []models.Order) ([]ReceivableRow, float64) {
	rows := make([]ReceivableRow, 0, len(orders))
	var outstanding float64
	for _, o := range orders {
		balance := ledger.Balance(o)
		rows = append(rows, ReceivableRow{
			OrderID:     o.ID.Hex(),
			CompanyName: o.Client.CompanyName,
			Total:       ledger.OrderTotal(o),
			Paid:        ledger.TotalPaid(o),
			Balance:     balance,
			Currency:    o.Financials.Currency,
			Settled:     balance <= 0,
		})
		outstanding += balance
	}
	return rows, outstanding
}
