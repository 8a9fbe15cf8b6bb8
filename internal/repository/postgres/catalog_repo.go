package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/port"
)

const catalogColumns = `id, name, sale_price, purchase_price, tax_rate, hsn_code,
	wholesale_price, wholesale_quantity, unit_conversion_id, sale_price_tax_inclusive`

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) List(ctx context.Context) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT "+catalogColumns+" FROM catalog_items ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.List: %w", err)
	}
	return items, nil
}

func (r *catalogRepo) GetByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.GetContext(ctx, &item,
		"SELECT "+catalogColumns+" FROM catalog_items WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("catalogRepo.GetByID: %w", err)
	}
	return &item, nil
}
