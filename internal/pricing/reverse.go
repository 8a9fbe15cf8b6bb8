package pricing

import "billbook/internal/domain"

// ReverseFromAmount applies a directly typed net amount to item and back-derives the price.
// It needs a positive primary quantity; otherwise only the amount is stored and false is
// returned.
//
// This path always behaves as if the conversion rate were 1 and ignores the secondary
// quantity, unlike Calculate.
func ReverseFromAmount(item *domain.DocumentItem, amount float64) bool {
	item.Amount = amount
	if item.PrimaryQuantity <= 0 {
		return false
	}

	var impliedPrice float64
	if item.SalePriceTaxInclusive {
		impliedPrice = amount / item.PrimaryQuantity
	} else {
		withoutTax := amount / (1 + item.TaxRate/100)
		impliedPrice = withoutTax / item.PrimaryQuantity
	}

	gross := item.PrimaryQuantity * impliedPrice
	discount := gross * item.DiscountPercent / 100
	afterDiscount := gross - discount
	tax := afterDiscount * item.TaxRate / 100

	item.PricePerUnit = Round2(impliedPrice)
	item.DiscountAmount = Round2(discount)
	item.TaxAmount = Round2(tax)
	return true
}
