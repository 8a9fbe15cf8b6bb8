package port

import (
	"context"

	"billbook/internal/domain"
)

// HSNRepository defines the contract for HSN code data access.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]domain.HSNEntry, error)
	// Import closes out every open code and inserts entries effective from today, in one
	// transaction. It returns the number of rows inserted.
	Import(ctx context.Context, entries []domain.HSNEntry) (int, error)
}
