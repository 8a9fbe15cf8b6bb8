package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/port"
)

type hsnRepo struct {
	db *sqlx.DB
}

// NewHSNRepo creates a new PostgreSQL-backed HSNRepository.
func NewHSNRepo(db *sqlx.DB) port.HSNRepository {
	return &hsnRepo{db: db}
}

// LoadAll returns every HSN code that is still in force, one row per valid GST rate.
func (r *hsnRepo) LoadAll(ctx context.Context) ([]domain.HSNEntry, error) {
	var entries []domain.HSNEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT code, description, gst_rate, condition_desc
		 FROM hsn_codes
		 WHERE effective_to IS NULL OR effective_to >= CURRENT_DATE
		 ORDER BY code, gst_rate`)
	if err != nil {
		return nil, fmt.Errorf("hsnRepo.LoadAll: %w", err)
	}
	return entries, nil
}

const hsnImportBatch = 500

// Import retires the open HSN rows and inserts entries in batches within one transaction.
func (r *hsnRepo) Import(ctx context.Context, entries []domain.HSNEntry) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("hsnRepo.Import: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// A same-day re-import replaces today's rows instead of retiring them.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM hsn_codes WHERE effective_from = CURRENT_DATE AND effective_to IS NULL`); err != nil {
		return 0, fmt.Errorf("hsnRepo.Import: clear: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE hsn_codes SET effective_to = CURRENT_DATE - 1
		 WHERE effective_to IS NULL`); err != nil {
		return 0, fmt.Errorf("hsnRepo.Import: retire: %w", err)
	}

	inserted := 0
	for start := 0; start < len(entries); start += hsnImportBatch {
		end := min(start+hsnImportBatch, len(entries))
		res, err := tx.NamedExecContext(ctx,
			`INSERT INTO hsn_codes (code, description, gst_rate, condition_desc, effective_from)
			 VALUES (:code, :description, :gst_rate, :condition_desc, CURRENT_DATE)`,
			entries[start:end])
		if err != nil {
			return 0, fmt.Errorf("hsnRepo.Import: insert batch at %d: %w", start, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("hsnRepo.Import: commit: %w", err)
	}
	return inserted, nil
}
