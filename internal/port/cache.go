package port

import (
	"context"

	"billbook/internal/pricing"
)

// ReferenceCache stores reference-data snapshots per country. A miss is (nil, false, nil).
type ReferenceCache interface {
	Get(ctx context.Context, country string) (*pricing.ReferenceData, bool, error)
	Set(ctx context.Context, country string, data *pricing.ReferenceData) error
	Invalidate(ctx context.Context, country string) error
}
