package service

import (
	"context"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/pricing"
)

// LineCalculationInput is one field edit applied to a single item outside any stored document.
// An empty Field re-derives the item from its current inputs.
type LineCalculationInput struct {
	Country string
	Kind    domain.DocumentKind
	Item    domain.DocumentItem
	Field   domain.ItemField
	Value   any
}

// CalculatorService prices line items without touching persisted documents.
type CalculatorService interface {
	CalculateLine(ctx context.Context, input *LineCalculationInput) (*domain.DocumentItem, error)
}

type calculatorService struct {
	refService ReferenceService
}

// NewCalculatorService creates a new CalculatorService.
func NewCalculatorService(refService ReferenceService) CalculatorService {
	return &calculatorService{refService: refService}
}

func (s *calculatorService) CalculateLine(ctx context.Context, input *LineCalculationInput) (*domain.DocumentItem, error) {
	kind := input.Kind
	if kind == "" {
		kind = domain.DocumentKindSale
	}
	if !kind.IsValid() {
		return nil, domain.ErrInvalidDocument
	}

	refs, err := s.refService.Snapshot(ctx, input.Country)
	if err != nil {
		return nil, err
	}

	item := input.Item
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	editor := pricing.NewEditor(refs, kind, refs.Country)
	if input.Field == "" {
		editor.Refresh(&item)
		return &item, nil
	}
	if err := editor.Apply(&item, input.Field, input.Value); err != nil {
		return nil, err
	}
	return &item, nil
}
