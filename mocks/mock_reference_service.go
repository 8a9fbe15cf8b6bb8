package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billbook/internal/pricing"
)

// MockReferenceService is a mock implementation of service.ReferenceService.
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) Snapshot(ctx context.Context, country string) (*pricing.ReferenceData, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.ReferenceData), args.Error(1)
}

func (m *MockReferenceService) Invalidate(ctx context.Context, country string) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}
