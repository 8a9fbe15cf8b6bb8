package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"billbook/internal/port"
)

// MockExportArchive is a mock implementation of port.ExportArchive.
type MockExportArchive struct {
	mock.Mock
}

func (m *MockExportArchive) Put(ctx context.Context, obj port.ArchivedExport) (string, error) {
	args := m.Called(ctx, obj)
	return args.String(0), args.Error(1)
}

func (m *MockExportArchive) DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockExportArchive) RemovePrefix(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}
