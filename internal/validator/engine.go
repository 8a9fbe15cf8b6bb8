package validator

import (
	"context"
	"log"

	"billbook/internal/domain"
	"billbook/internal/validator/rules"
)

// ResultEntry is a single rule outcome with the rule's metadata attached.
type ResultEntry struct {
	RuleKey       string                    `json:"rule_key"`
	RuleName      string                    `json:"rule_name"`
	RuleType      domain.ValidationRuleType `json:"rule_type"`
	Severity      domain.ValidationSeverity `json:"severity"`
	Passed        bool                      `json:"passed"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value"`
	ActualValue   string                    `json:"actual_value"`
	Message       string                    `json:"message"`
}

// Summary holds aggregate counts of validation results.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the outcome of validating one document. Errors is the field-keyed error map that
// blocks submission; Warnings never block.
type Report struct {
	Status        domain.ValidationStatus `json:"status"`
	Summary       Summary                 `json:"summary"`
	Errors        map[string]string       `json:"errors"`
	Warnings      map[string]string       `json:"warnings"`
	Results       []ResultEntry           `json:"results"`
	FieldStatuses map[string]*FieldStatus `json:"field_statuses"`
}

// HasErrors reports whether any error-severity rule failed.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Engine runs registered rules over documents.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// NewDefaultEngine registers the built-in rules, plus the HSN rules when hsn has codes.
func NewDefaultEngine(hsn *rules.HSNLookup) *Engine {
	registry := NewRegistry()
	for _, v := range rules.AllBuiltinValidators() {
		registry.Register(v)
	}
	if hsn.Len() > 0 {
		for _, v := range rules.HSNValidators(hsn) {
			registry.Register(v)
		}
	}
	return NewEngine(registry)
}

// ValidateDocument runs every registered rule against doc. Only the first failing message
// per field path is kept in the error and warning maps.
func (e *Engine) ValidateDocument(ctx context.Context, doc *domain.Document) *Report {
	report := &Report{
		Errors:   make(map[string]string),
		Warnings: make(map[string]string),
		Results:  []ResultEntry{},
	}

	for _, v := range e.registry.All() {
		for _, vr := range v.Validate(ctx, doc) {
			report.Results = append(report.Results, ResultEntry{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				RuleType:      v.RuleType(),
				Severity:      v.Severity(),
				Passed:        vr.Passed,
				FieldPath:     vr.FieldPath,
				ExpectedValue: vr.ExpectedValue,
				ActualValue:   vr.ActualValue,
				Message:       vr.Message,
			})
			report.Summary.Total++
			if vr.Passed {
				report.Summary.Passed++
				continue
			}
			target := report.Warnings
			if v.Severity() == domain.ValidationSeverityError {
				report.Summary.Errors++
				target = report.Errors
			} else {
				report.Summary.Warnings++
			}
			if _, exists := target[vr.FieldPath]; !exists {
				target[vr.FieldPath] = vr.Message
			}
		}
	}

	switch {
	case report.Summary.Errors > 0:
		report.Status = domain.ValidationStatusInvalid
	case report.Summary.Warnings > 0:
		report.Status = domain.ValidationStatusWarning
	default:
		report.Status = domain.ValidationStatusValid
	}
	report.FieldStatuses = ComputeFieldStatuses(report.Results)

	log.Printf("validator.Engine: document %s validated, status=%s, results=%d", doc.ID, report.Status, len(report.Results))
	return report
}
