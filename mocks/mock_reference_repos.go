package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billbook/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) List(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepo) GetByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

// MockUnitRepo is a mock implementation of port.UnitRepository.
type MockUnitRepo struct {
	mock.Mock
}

func (m *MockUnitRepo) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

func (m *MockUnitRepo) ListConversions(ctx context.Context) ([]domain.UnitConversion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnitConversion), args.Error(1)
}

// MockTaxRateRepo is a mock implementation of port.TaxRateRepository.
type MockTaxRateRepo struct {
	mock.Mock
}

func (m *MockTaxRateRepo) ListByCountry(ctx context.Context, country string) ([]domain.TaxRateOption, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxRateOption), args.Error(1)
}

// MockHSNRepo is a mock implementation of port.HSNRepository.
type MockHSNRepo struct {
	mock.Mock
}

func (m *MockHSNRepo) LoadAll(ctx context.Context) ([]domain.HSNEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HSNEntry), args.Error(1)
}

func (m *MockHSNRepo) Import(ctx context.Context, entries []domain.HSNEntry) (int, error) {
	args := m.Called(ctx, entries)
	return args.Int(0), args.Error(1)
}
