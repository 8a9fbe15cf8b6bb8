package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billbook/internal/domain"
	"billbook/internal/service"
)

// MockCalculatorService is a mock implementation of service.CalculatorService.
type MockCalculatorService struct {
	mock.Mock
}

func (m *MockCalculatorService) CalculateLine(ctx context.Context, input *service.LineCalculationInput) (*domain.DocumentItem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentItem), args.Error(1)
}
