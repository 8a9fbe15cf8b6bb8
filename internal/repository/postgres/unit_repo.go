package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type unitRepo struct {
	db *sqlx.DB
}

// NewUnitRepo creates a new PostgreSQL-backed UnitRepository.
func NewUnitRepo(db *sqlx.DB) port.UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	var units []domain.Unit
	err := r.db.SelectContext(ctx, &units,
		"SELECT id, short_name FROM units ORDER BY short_name")
	if err != nil {
		return nil, fmt.Errorf("unitRepo.ListUnits: %w", err)
	}
	return units, nil
}

func (r *unitRepo) ListConversions(ctx context.Context) ([]domain.UnitConversion, error) {
	var conversions []domain.UnitConversion
	err := r.db.SelectContext(ctx, &conversions,
		`SELECT id, primary_unit_id, secondary_unit_id, conversion_rate
		 FROM unit_conversions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("unitRepo.ListConversions: %w", err)
	}
	return conversions, nil
}
