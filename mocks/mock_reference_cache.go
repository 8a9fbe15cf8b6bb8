package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billbook/internal/pricing"
)

// MockReferenceCache is a mock implementation of port.ReferenceCache.
type MockReferenceCache struct {
	mock.Mock
}

func (m *MockReferenceCache) Get(ctx context.Context, country string) (*pricing.ReferenceData, bool, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*pricing.ReferenceData), args.Bool(1), args.Error(2)
}

func (m *MockReferenceCache) Set(ctx context.Context, country string, data *pricing.ReferenceData) error {
	args := m.Called(ctx, country, data)
	return args.Error(0)
}

func (m *MockReferenceCache) Invalidate(ctx context.Context, country string) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}
