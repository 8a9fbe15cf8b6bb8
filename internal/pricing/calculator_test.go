package pricing_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"billbook/internal/domain"
	"billbook/internal/pricing"
)

func TestCalculate_ExclusiveWorkedExample(t *testing.T) {
	r := pricing.Calculate(pricing.LineInput{
		PrimaryQuantity: 2, PricePerUnit: 50, ConversionRate: 1,
		DiscountPercent: 10, TaxRate: 18, TaxInclusive: false,
	})

	assert.InDelta(t, 100, r.GrossAmount, 1e-9)
	assert.InDelta(t, 10, r.DiscountAmount, 1e-9)
	assert.InDelta(t, 90, r.AmountAfterDiscount, 1e-9)
	assert.InDelta(t, 16.2, r.TaxAmount, 1e-9)
	assert.InDelta(t, 106.2, r.NetAmount, 1e-9)
}

func TestCalculate_InclusiveWorkedExample(t *testing.T) {
	r := pricing.Calculate(pricing.LineInput{
		PrimaryQuantity: 2, PricePerUnit: 50, ConversionRate: 1,
		DiscountPercent: 10, TaxRate: 18, TaxInclusive: true,
	})

	assert.InDelta(t, 16.2, r.TaxAmount, 1e-9)
	assert.InDelta(t, 90, r.NetAmount, 1e-9)
}

func TestCalculate_IsPure(t *testing.T) {
	in := pricing.LineInput{
		PrimaryQuantity: 3, SecondaryQuantity: 5, PricePerUnit: 33.33,
		ConversionRate: 12, DiscountPercent: 7.5, TaxRate: 12,
	}
	assert.Equal(t, pricing.Calculate(in), pricing.Calculate(in))
}

func TestCalculate_NoConversionMatchesSimpleFormula(t *testing.T) {
	for _, qty := range []float64{0, 1, 2.5, 17} {
		for _, price := range []float64{0, 9.99, 50, 1234.5} {
			r := pricing.Calculate(pricing.LineInput{PrimaryQuantity: qty, PricePerUnit: price, ConversionRate: 1})
			assert.Equal(t, qty, r.TotalBaseUnits)
			assert.Equal(t, qty*price, r.GrossAmount)
			assert.Equal(t, r.GrossAmount, r.NetAmount)
		}
	}
}

func TestCalculate_WithConversion(t *testing.T) {
	// 2 boxes + 3 pieces at 120 per box of 12.
	r := pricing.Calculate(pricing.LineInput{
		PrimaryQuantity: 2, SecondaryQuantity: 3, PricePerUnit: 120, ConversionRate: 12,
	})
	assert.Equal(t, 27.0, r.TotalBaseUnits)
	assert.Equal(t, 10.0, r.PricePerBaseUnit)
	assert.InDelta(t, 270, r.GrossAmount, 1e-9)
	assert.Equal(t, 12.0, r.ConversionRate)
}

func TestCalculate_NonPositiveConversionIsIdentity(t *testing.T) {
	for _, rate := range []float64{0, -5} {
		r := pricing.Calculate(pricing.LineInput{PrimaryQuantity: 4, SecondaryQuantity: 1, PricePerUnit: 10, ConversionRate: rate})
		assert.Equal(t, 1.0, r.ConversionRate)
		assert.Equal(t, 5.0, r.TotalBaseUnits)
		assert.Equal(t, 50.0, r.GrossAmount)
	}
}

func TestCalculate_TaxFormulaHoldsForAllDiscountsAndRates(t *testing.T) {
	for _, d := range []float64{0, 2.5, 10, 33.3, 50, 99.9, 100} {
		for _, rate := range []float64{0, 0.25, 5, 12, 18, 28} {
			for _, inclusive := range []bool{true, false} {
				t.Run(fmt.Sprintf("d=%v t=%v incl=%v", d, rate, inclusive), func(t *testing.T) {
					r := pricing.Calculate(pricing.LineInput{
						PrimaryQuantity: 3, PricePerUnit: 41.7, ConversionRate: 1,
						DiscountPercent: d, TaxRate: rate, TaxInclusive: inclusive,
					})
					gross := r.GrossAmount
					assert.Equal(t, (gross-gross*d/100)*rate/100, r.TaxAmount)
				})
			}
		}
	}
}

func TestApplyLine_RoundsStoredAmounts(t *testing.T) {
	item := domain.DocumentItem{}
	pricing.ApplyLine(&item, pricing.LineResult{DiscountAmount: 1.005, TaxAmount: 2.3449, NetAmount: 106.199999})

	assert.Equal(t, 1.01, item.DiscountAmount)
	assert.Equal(t, 2.34, item.TaxAmount)
	assert.Equal(t, 106.2, item.Amount)
}

func TestInputFor(t *testing.T) {
	item := domain.DocumentItem{
		PrimaryQuantity: 2, SecondaryQuantity: 1, PricePerUnit: 50,
		DiscountPercent: 10, TaxRate: 18, SalePriceTaxInclusive: true,
	}
	in := pricing.InputFor(&item, 12)
	assert.Equal(t, pricing.LineInput{
		PrimaryQuantity: 2, SecondaryQuantity: 1, PricePerUnit: 50, ConversionRate: 12,
		DiscountPercent: 10, TaxRate: 18, TaxInclusive: true,
	}, in)
}
