package validator

import (
	"context"
	"slices"
	"strings"

	"billbook/internal/domain"
	"billbook/internal/validator/rules"
)

// Validator is one built-in document rule.
type Validator interface {
	Validate(ctx context.Context, doc *domain.Document) []rules.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}

// Registry holds rules by key and iterates them in key order, so reports are stable.
type Registry struct {
	byKey map[string]Validator
	keys  []string
}

// NewRegistry returns a registry holding vs.
func NewRegistry(vs ...Validator) *Registry {
	r := &Registry{byKey: make(map[string]Validator, len(vs))}
	for _, v := range vs {
		r.Register(v)
	}
	return r
}

// Register adds v, replacing any rule with the same key.
func (r *Registry) Register(v Validator) {
	key := v.RuleKey()
	if _, ok := r.byKey[key]; !ok {
		i, _ := slices.BinarySearch(r.keys, key)
		r.keys = slices.Insert(r.keys, i, key)
	}
	r.byKey[key] = v
}

func (r *Registry) Get(key string) Validator {
	return r.byKey[key]
}

// All returns the rules ordered by key.
func (r *Registry) All() []Validator {
	out := make([]Validator, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.byKey[k]
	}
	return out
}

// Keys returns the registered rule keys under prefix, in order. An empty prefix returns all.
func (r *Registry) Keys(prefix string) []string {
	var out []string
	for _, k := range r.keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.keys)
}
