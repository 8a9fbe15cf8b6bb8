package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billbook/internal/document"
	"billbook/internal/domain"
	"billbook/internal/export"
	"billbook/internal/service"
	"billbook/internal/validator"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, input *service.CreateDocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) Calculate(ctx context.Context, doc *domain.Document) (*service.CalculationResult, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalculationResult), args.Error(1)
}

func (m *MockDocumentService) Apply(ctx context.Context, id uuid.UUID, cmds []document.Command) (*service.CalculationResult, error) {
	args := m.Called(ctx, id, cmds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalculationResult), args.Error(1)
}

func (m *MockDocumentService) Validate(ctx context.Context, id uuid.UUID) (*validator.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.Report), args.Error(1)
}

func (m *MockDocumentService) Submit(ctx context.Context, id uuid.UUID) (*domain.Document, *validator.Report, error) {
	args := m.Called(ctx, id)
	var doc *domain.Document
	if v := args.Get(0); v != nil {
		doc = v.(*domain.Document)
	}
	var report *validator.Report
	if v := args.Get(1); v != nil {
		report = v.(*validator.Report)
	}
	return doc, report, args.Error(2)
}

func (m *MockDocumentService) Export(ctx context.Context, id uuid.UUID, format export.Format, archive bool) (*service.ExportOutput, error) {
	args := m.Called(ctx, id, format, archive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportOutput), args.Error(1)
}
