package pricing

import "billbook/internal/domain"

// LineInput carries the raw numbers of one line. ConversionRate means
// 1 primary unit = ConversionRate secondary (base) units.
type LineInput struct {
	PrimaryQuantity   float64
	SecondaryQuantity float64
	PricePerUnit      float64
	ConversionRate    float64
	DiscountPercent   float64
	TaxRate           float64
	TaxInclusive      bool
}

// LineResult is the unrounded outcome of Calculate.
type LineResult struct {
	TotalBaseUnits      float64 `json:"total_base_units"`
	GrossAmount         float64 `json:"gross_amount"`
	DiscountAmount      float64 `json:"discount_amount"`
	AmountAfterDiscount float64 `json:"amount_after_discount"`
	TaxAmount           float64 `json:"tax_amount"`
	NetAmount           float64 `json:"net_amount"`
	PricePerBaseUnit    float64 `json:"price_per_base_unit"`
	ConversionRate      float64 `json:"conversion_rate"`
}

// Calculate settles one line. The steps run in a fixed order and nothing is rounded here;
// rounding happens when results are stored on an item (see ApplyLine).
func Calculate(in LineInput) LineResult {
	rate := in.ConversionRate
	if rate <= 0 {
		rate = 1
	}

	totalBaseUnits := in.PrimaryQuantity*rate + in.SecondaryQuantity
	pricePerBaseUnit := in.PricePerUnit / rate
	gross := totalBaseUnits * pricePerBaseUnit

	discount := gross * in.DiscountPercent / 100
	afterDiscount := gross - discount

	// Same formula in both modes; only the net amount differs.
	tax := afterDiscount * in.TaxRate / 100
	net := afterDiscount
	if !in.TaxInclusive {
		net = afterDiscount + tax
	}

	return LineResult{
		TotalBaseUnits:      totalBaseUnits,
		GrossAmount:         gross,
		DiscountAmount:      discount,
		AmountAfterDiscount: afterDiscount,
		TaxAmount:           tax,
		NetAmount:           net,
		PricePerBaseUnit:    pricePerBaseUnit,
		ConversionRate:      rate,
	}
}

// ApplyLine stores the derived amounts of r on item, rounded to 2 decimals.
func ApplyLine(item *domain.DocumentItem, r LineResult) {
	item.DiscountAmount = Round2(r.DiscountAmount)
	item.TaxAmount = Round2(r.TaxAmount)
	item.Amount = Round2(r.NetAmount)
}

// InputFor builds the calculator input for item with the given conversion rate.
func InputFor(item *domain.DocumentItem, conversionRate float64) LineInput {
	return LineInput{
		PrimaryQuantity:   item.PrimaryQuantity,
		SecondaryQuantity: item.SecondaryQuantity,
		PricePerUnit:      item.PricePerUnit,
		ConversionRate:    conversionRate,
		DiscountPercent:   item.DiscountPercent,
		TaxRate:           item.TaxRate,
		TaxInclusive:      item.SalePriceTaxInclusive,
	}
}
