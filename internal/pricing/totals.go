package pricing

import (
	"math"

	"billbook/internal/domain"
)

// Totals are the document-level sums produced by Aggregate.
type Totals struct {
	ItemsTotal     float64 `json:"items_total"`
	ChargesTotal   float64 `json:"charges_total"`
	Subtotal       float64 `json:"subtotal"`
	Total          float64 `json:"total"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	PaidAmount     float64 `json:"paid_amount"`
	BalanceAmount  float64 `json:"balance_amount"`
}

// Aggregate sums items, charges and document adjustments. Item amounts are already settled
// per their own tax mode; the tax roll-up is informational and never re-added. The final
// total is rounded to a whole currency unit.
func Aggregate(doc *domain.Document) Totals {
	var itemsTotal, taxTotal, chargesTotal float64
	for i := range doc.Items {
		itemsTotal += doc.Items[i].Amount
		taxTotal += doc.Items[i].TaxAmount
	}
	for i := range doc.Charges {
		chargesTotal += doc.Charges[i].Amount
	}

	subtotal := itemsTotal + chargesTotal - doc.DiscountAmount + doc.Shipping + doc.Packaging + doc.Adjustment
	total := RoundToInteger(subtotal + doc.RoundOff)

	return Totals{
		ItemsTotal:     Round2(itemsTotal),
		ChargesTotal:   Round2(chargesTotal),
		Subtotal:       Round2(subtotal),
		Total:          total,
		TaxAmount:      Round2(taxTotal),
		DiscountAmount: doc.DiscountAmount,
		PaidAmount:     doc.PaidAmount,
		BalanceAmount:  Round2(total - doc.PaidAmount),
	}
}

// EnforceCashPolicy settles cash transactions in full: paid equals total, nothing owed.
func EnforceCashPolicy(txType domain.TransactionType, t Totals) Totals {
	if txType == domain.TransactionTypeCash {
		t.PaidAmount = t.Total
		t.BalanceAmount = 0
	}
	return t
}

// SuggestRoundOff proposes the round-off that brings subtotal to a whole unit, from its
// fractional part alone.
func SuggestRoundOff(subtotal float64) float64 {
	frac := subtotal - math.Floor(subtotal)
	if frac >= 0.5 {
		return Round2(1 - frac)
	}
	return Round2(-frac)
}
