package rules

import (
	"context"
	"fmt"
	"strings"

	"billbook/internal/domain"
)

func fieldMessage(passed bool, ruleName, fieldPath string) string {
	if passed {
		return fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	}
	return fmt.Sprintf("%s: %s is missing or empty", ruleName, fieldPath)
}

func presence(ruleName, fieldPath, val string) ValidationResult {
	passed := strings.TrimSpace(val) != ""
	return ValidationResult{
		Passed:        passed,
		FieldPath:     fieldPath,
		ExpectedValue: "non-empty value",
		ActualValue:   val,
		Message:       fieldMessage(passed, ruleName, fieldPath),
	}
}

func requiredField(key, name, fieldPath string, extract func(*domain.Document) string) *BuiltinValidator {
	return &BuiltinValidator{
		key: key, name: name,
		ruleType: domain.ValidationRuleRequired,
		sev:      domain.ValidationSeverityError,
		fn: func(_ context.Context, doc *domain.Document) []ValidationResult {
			return []ValidationResult{presence(name, fieldPath, extract(doc))}
		},
	}
}

func requiredItemField(key, name string, field domain.ItemField, extract func(*domain.DocumentItem) string) *BuiltinValidator {
	return &BuiltinValidator{
		key: key, name: name,
		ruleType: domain.ValidationRuleRequired,
		sev:      domain.ValidationSeverityError,
		fn: func(_ context.Context, doc *domain.Document) []ValidationResult {
			results := make([]ValidationResult, 0, len(doc.Items))
			for i := range doc.Items {
				results = append(results, presence(name, ItemFieldPath(i, field), extract(&doc.Items[i])))
			}
			return results
		},
	}
}

// ItemFieldPath is the error-map key for field of the item at index i.
func ItemFieldPath(i int, field domain.ItemField) string {
	return fmt.Sprintf("items[%d].%s", i, field)
}

// RequiredFieldValidators returns the presence checks a document needs before submission.
func RequiredFieldValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		requiredField("req.document.party_name", "Required: Party Name", string(domain.DocumentFieldPartyName),
			func(d *domain.Document) string { return d.PartyName }),
		requiredField("req.document.number", "Required: Document Number", string(domain.DocumentFieldNumber),
			func(d *domain.Document) string { return d.Number }),
		requiredField("req.document.date", "Required: Document Date", string(domain.DocumentFieldDate),
			func(d *domain.Document) string { return d.Date }),
		{
			key: "req.document.items", name: "Required: At Least One Item",
			ruleType: domain.ValidationRuleRequired,
			sev:      domain.ValidationSeverityError,
			fn: func(_ context.Context, doc *domain.Document) []ValidationResult {
				passed := len(doc.Items) > 0
				msg := "Required: At Least One Item: document has items"
				if !passed {
					msg = "Required: At Least One Item: document has no items"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "items",
					ExpectedValue: ">= 1 item", ActualValue: fmt.Sprintf("%d", len(doc.Items)),
					Message: msg,
				}}
			},
		},
		requiredItemField("req.item.name", "Required: Item Name", domain.ItemFieldItemName,
			func(it *domain.DocumentItem) string { return it.ItemName }),
		requiredItemField("req.item.primary_unit", "Required: Item Primary Unit", domain.ItemFieldPrimaryUnitName,
			func(it *domain.DocumentItem) string { return it.PrimaryUnitName }),
	}
}
