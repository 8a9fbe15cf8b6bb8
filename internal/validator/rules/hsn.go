package rules

import (
	"context"
	"fmt"
	"strings"

	"billbook/internal/domain"
)

// HSNValidators returns the checks that need an HSN master list. The lookup is captured by
// closure.
func HSNValidators(lookup *HSNLookup) []*BuiltinValidator {
	return []*BuiltinValidator{
		{
			key:      "hsn.item.exists",
			name:     "HSN: Code Exists in Master",
			ruleType: domain.ValidationRuleCustom,
			sev:      domain.ValidationSeverityWarning,
			fn:       hsnExistsValidator(lookup),
		},
		{
			key:      "hsn.item.rate",
			name:     "HSN: Tax Rate Match",
			ruleType: domain.ValidationRuleCrossField,
			sev:      domain.ValidationSeverityWarning,
			fn:       hsnRateValidator(lookup),
		},
	}
}

func hsnExistsValidator(lookup *HSNLookup) func(context.Context, *domain.Document) []ValidationResult {
	return func(_ context.Context, doc *domain.Document) []ValidationResult {
		results := make([]ValidationResult, 0, len(doc.Items))
		for i := range doc.Items {
			item := &doc.Items[i]
			fp := ItemFieldPath(i, domain.ItemFieldHSNCode)

			if item.HSNCode == "" {
				results = append(results, ValidationResult{
					Passed: true, FieldPath: fp,
					Message: "HSN: Code Exists in Master: HSN code is empty, skipping",
				})
				continue
			}

			exists := lookup.Exists(item.HSNCode)
			msg := fmt.Sprintf("HSN: Code Exists in Master: %s found in HSN master list", fp)
			if !exists {
				msg = fmt.Sprintf("HSN: Code Exists in Master: %s code %q not found in HSN master list", fp, item.HSNCode)
			}
			results = append(results, ValidationResult{
				Passed:        exists,
				FieldPath:     fp,
				ExpectedValue: "valid HSN code from master list",
				ActualValue:   item.HSNCode,
				Message:       msg,
			})
		}
		return results
	}
}

func hsnRateValidator(lookup *HSNLookup) func(context.Context, *domain.Document) []ValidationResult {
	return func(_ context.Context, doc *domain.Document) []ValidationResult {
		var results []ValidationResult
		for i := range doc.Items {
			item := &doc.Items[i]
			if item.HSNCode == "" || !lookup.Exists(item.HSNCode) {
				continue
			}
			fp := ItemFieldPath(i, domain.ItemFieldTaxRate)

			matched, validRates := lookup.RateMatches(item.HSNCode, item.TaxRate)
			msg := fmt.Sprintf("HSN: Tax Rate Match: %s rate matches HSN %s", fp, item.HSNCode)
			if !matched {
				msg = fmt.Sprintf("HSN: Tax Rate Match: %s rate %s%% does not match expected rates for HSN %s", fp, fmtf(item.TaxRate), item.HSNCode)
			}
			results = append(results, ValidationResult{
				Passed:        matched,
				FieldPath:     fp,
				ExpectedValue: formatExpectedRates(validRates),
				ActualValue:   fmtf(item.TaxRate) + "%",
				Message:       msg,
			})
		}
		return results
	}
}

func formatExpectedRates(rates []HSNRateEntry) string {
	if len(rates) == 0 {
		return "no rates found"
	}
	parts := make([]string, 0, len(rates))
	for idx := range rates {
		r := &rates[idx]
		s := fmtf(r.Rate) + "%"
		if r.ConditionDesc != "" {
			s += " (" + r.ConditionDesc + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
