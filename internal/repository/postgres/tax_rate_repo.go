package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type taxRateRepo struct {
	db *sqlx.DB
}

// NewTaxRateRepo creates a new PostgreSQL-backed TaxRateRepository.
func NewTaxRateRepo(db *sqlx.DB) port.TaxRateRepository {
	return &taxRateRepo{db: db}
}

// ListByCountry returns the country's tax table in display order. An unknown country yields
// an empty slice, which resolves every code to 0%.
func (r *taxRateRepo) ListByCountry(ctx context.Context, country string) ([]domain.TaxRateOption, error) {
	var options []domain.TaxRateOption
	err := r.db.SelectContext(ctx, &options,
		`SELECT country, code, label FROM tax_rates
		 WHERE country = $1 ORDER BY sort_order, code`, country)
	if err != nil {
		return nil, fmt.Errorf("taxRateRepo.ListByCountry: %w", err)
	}
	return options, nil
}
