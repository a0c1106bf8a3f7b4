// Package statement renders the per-customer account statement as fixed
// plain text. The output must be byte-for-byte reproducible from the
// same inputs; it feeds copy-to-clipboard and outbound e-mail drafts, so
// nothing here may depend on ambient state like the wall clock.
package statement

import (
	"fmt"
	"strings"
	"time"

	"onswipes/internal/ledger"
	"onswipes/internal/models"
)

const dateLayout = "02.01.2006"

// CustomerFinancials are the cross-order grand totals for one customer,
// computed purely by summing each order's own totalAmount and payments.
type CustomerFinancials struct {
	TotalDebt float64
	TotalPaid float64
	Balance   float64
}

func Financials(orders []models.Order) CustomerFinancials {
	var f CustomerFinancials
	for _, o := range orders {
		f.TotalDebt += ledger.OrderTotal(o)
		f.TotalPaid += ledger.TotalPaid(o)
	}
	f.Balance = f.TotalDebt - f.TotalPaid
	return f
}

// Render builds the statement text for a customer and their orders as of
// the given date. The grand-total block is labeled in GBP, matching the
// fixed letterhead the business sends out.
func Render(customer models.Customer, orders []models.Order, asOf time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sayın %s (%s),\n\n", customer.Info.ContactPerson, customer.Info.CompanyName)
	fmt.Fprintf(&b, "%s tarihli güncel hesap ekstreniz ve sipariş detaylarınız aşağıdadır:\n\n", asOf.Format(dateLayout))

	if len(orders) == 0 {
		b.WriteString("Kayıtlı sipariş bulunmamaktadır.\n")
	} else {
		for _, o := range orders {
			cur := o.Financials.Currency
			b.WriteString("------------------------------------------\n")
			fmt.Fprintf(&b, "SİPARİŞ NO: #%s (%s)\n", o.ID.Hex(), o.OrderDate.Format(dateLayout))
			for _, item := range o.Items {
				fmt.Fprintf(&b, "- %s (%s ad): %s %s\n",
					item.Specs.EssenceName, formatInt(item.Quantity), formatAmount(item.TotalPrice), cur)
			}
			paid := ledger.TotalPaid(o)
			balance := ledger.Balance(o)
			fmt.Fprintf(&b, "Ara Toplam: %s | KDV: %%%s\n", formatAmount(o.Financials.SubTotal), formatAmount(o.Financials.VATRate))
			fmt.Fprintf(&b, "Genel Toplam: %s %s\n", formatAmount(o.Financials.TotalAmount), cur)
			fmt.Fprintf(&b, "Durum: Ödenen %s | Kalan %s %s\n", formatAmount(paid), formatAmount(balance), cur)
		}
	}

	f := Financials(orders)
	b.WriteString("\n==========================================\n")
	fmt.Fprintf(&b, "GENEL TOPLAM BORÇ: %s GBP\n", formatAmount(f.TotalDebt))
	fmt.Fprintf(&b, "TOPLAM ÖDENEN: %s GBP\n", formatAmount(f.TotalPaid))
	fmt.Fprintf(&b, "GÜNCEL BAKİYE: %s GBP\n", formatAmount(f.Balance))
	b.WriteString("==========================================\n\n")
	b.WriteString("Saygılarımızla,\nOnsWipes Pro")

	return b.String()
}
