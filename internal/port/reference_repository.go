package port

import (
	"context"

	"billbook/internal/domain"
)

// CatalogRepository reads the item master.
type CatalogRepository interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	GetByID(ctx context.Context, id string) (*domain.CatalogItem, error)
}

// UnitRepository reads units of measure and the conversions between them.
type UnitRepository interface {
	ListUnits(ctx context.Context) ([]domain.Unit, error)
	ListConversions(ctx context.Context) ([]domain.UnitConversion, error)
}

// TaxRateRepository reads per-country tax-rate tables.
type TaxRateRepository interface {
	ListByCountry(ctx context.Context, country string) ([]domain.TaxRateOption, error)
}
