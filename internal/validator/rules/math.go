package rules

import (
	"context"
	"fmt"
	"math"

	"billbook/internal/domain"
	"billbook/internal/pricing"
)

const mathTolerance = 1.00

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= mathTolerance
}

func mathResult(passed bool, fieldPath, expected, actual, ruleName string) ValidationResult {
	msg := fmt.Sprintf("%s: %s calculation matches", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s calculation mismatch (expected %s, got %s)", ruleName, fieldPath, expected, actual)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

func fmtf(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func sumCheck(key, name string, validate func(*domain.Document) []ValidationResult) *BuiltinValidator {
	return &BuiltinValidator{
		key: key, name: name,
		ruleType: domain.ValidationRuleSumCheck,
		sev:      domain.ValidationSeverityWarning,
		fn: func(_ context.Context, doc *domain.Document) []ValidationResult {
			return validate(doc)
		},
	}
}

// MathValidators returns consistency checks over stored amounts. They only warn: stored
// amounts are what the pricing engine produced, including the reverse-amount path, which
// is allowed to disagree with the forward formulas.
func MathValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		sumCheck("math.item.tax_amount", "Math: Item Tax Amount", func(d *domain.Document) []ValidationResult {
			results := make([]ValidationResult, 0, len(d.Items))
			for i := range d.Items {
				item := &d.Items[i]
				afterDiscount := item.Amount
				if !item.SalePriceTaxInclusive {
					afterDiscount = item.Amount - item.TaxAmount
				}
				expected := afterDiscount * item.TaxRate / 100
				fp := ItemFieldPath(i, domain.ItemFieldTaxAmount)
				results = append(results, mathResult(approxEqual(item.TaxAmount, expected), fp, fmtf(expected), fmtf(item.TaxAmount), "Math: Item Tax Amount"))
			}
			return results
		}),
		sumCheck("math.document.tax_amount", "Math: Document Tax Amount", func(d *domain.Document) []ValidationResult {
			var sum float64
			for i := range d.Items {
				sum += d.Items[i].TaxAmount
			}
			return []ValidationResult{mathResult(approxEqual(d.TaxAmount, sum), "tax_amount", fmtf(sum), fmtf(d.TaxAmount), "Math: Document Tax Amount")}
		}),
		sumCheck("math.document.total", "Math: Document Total", func(d *domain.Document) []ValidationResult {
			expected := pricing.Aggregate(d).Subtotal + d.RoundOff
			return []ValidationResult{mathResult(approxEqual(d.Total, expected), "total", fmtf(expected), fmtf(d.Total), "Math: Document Total")}
		}),
		sumCheck("math.document.round_off", "Math: Round Off", func(d *domain.Document) []ValidationResult {
			passed := math.Abs(d.RoundOff) <= 0.50
			msg := "Math: Round Off: within acceptable range"
			if !passed {
				msg = fmt.Sprintf("Math: Round Off: abs(%.2f) > 0.50", d.RoundOff)
			}
			return []ValidationResult{{
				Passed: passed, FieldPath: "round_off",
				ExpectedValue: "abs(round_off) <= 0.50", ActualValue: fmtf(d.RoundOff), Message: msg,
			}}
		}),
		sumCheck("math.document.cash_paid", "Math: Cash Paid In Full", func(d *domain.Document) []ValidationResult {
			if d.TransactionType != domain.TransactionTypeCash {
				return nil
			}
			return []ValidationResult{mathResult(approxEqual(d.PaidAmount, d.Total), "paid_amount", fmtf(d.Total), fmtf(d.PaidAmount), "Math: Cash Paid In Full")}
		}),
	}
}
