package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/port"
)

// documentRow is the documents table shape. Line items, charges and transportation are JSONB.
type documentRow struct {
	ID              uuid.UUID       `db:"id"`
	Kind            string          `db:"kind"`
	Status          string          `db:"status"`
	Number          string          `db:"number"`
	Date            string          `db:"document_date"`
	PartyID         string          `db:"party_id"`
	PartyName       string          `db:"party_name"`
	Country         string          `db:"country"`
	TransactionType string          `db:"transaction_type"`
	PaymentType     string          `db:"payment_type"`
	BankID          string          `db:"bank_id"`
	ChequeNumber    string          `db:"cheque_number"`
	ChequeDate      string          `db:"cheque_date"`
	Items           json.RawMessage `db:"items"`
	Charges         json.RawMessage `db:"charges"`
	Transportation  json.RawMessage `db:"transportation"`
	DiscountAmount  float64         `db:"discount_amount"`
	Shipping        float64         `db:"shipping"`
	Packaging       float64         `db:"packaging"`
	Adjustment      float64         `db:"adjustment"`
	RoundOff        float64         `db:"round_off"`
	PaidAmount      float64         `db:"paid_amount"`
	Total           float64         `db:"total"`
	TaxAmount       float64         `db:"tax_amount"`
	BalanceAmount   sql.NullFloat64 `db:"balance_amount"`
	Notes           string          `db:"notes"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func newDocumentRow(doc *domain.Document) (*documentRow, error) {
	items, err := marshalList(doc.Items)
	if err != nil {
		return nil, fmt.Errorf("encoding items: %w", err)
	}
	charges, err := marshalList(doc.Charges)
	if err != nil {
		return nil, fmt.Errorf("encoding charges: %w", err)
	}
	transportation, err := marshalList(doc.Transportation)
	if err != nil {
		return nil, fmt.Errorf("encoding transportation: %w", err)
	}

	row := &documentRow{
		ID:              doc.ID,
		Kind:            string(doc.Kind),
		Status:          string(doc.Status),
		Number:          doc.Number,
		Date:            doc.Date,
		PartyID:         doc.PartyID,
		PartyName:       doc.PartyName,
		Country:         doc.Country,
		TransactionType: string(doc.TransactionType),
		PaymentType:     string(doc.PaymentType),
		BankID:          doc.BankID,
		ChequeNumber:    doc.ChequeNumber,
		ChequeDate:      doc.ChequeDate,
		Items:           items,
		Charges:         charges,
		Transportation:  transportation,
		DiscountAmount:  doc.DiscountAmount,
		Shipping:        doc.Shipping,
		Packaging:       doc.Packaging,
		Adjustment:      doc.Adjustment,
		RoundOff:        doc.RoundOff,
		PaidAmount:      doc.PaidAmount,
		Total:           doc.Total,
		TaxAmount:       doc.TaxAmount,
		Notes:           doc.Notes,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	if doc.BalanceAmount != nil {
		row.BalanceAmount = sql.NullFloat64{Float64: *doc.BalanceAmount, Valid: true}
	}
	return row, nil
}

func (row *documentRow) toDomain() (*domain.Document, error) {
	doc := &domain.Document{
		ID:              row.ID,
		Kind:            domain.DocumentKind(row.Kind),
		Status:          domain.DocumentStatus(row.Status),
		Number:          row.Number,
		Date:            row.Date,
		PartyID:         row.PartyID,
		PartyName:       row.PartyName,
		Country:         row.Country,
		TransactionType: domain.TransactionType(row.TransactionType),
		PaymentType:     domain.PaymentType(row.PaymentType),
		BankID:          row.BankID,
		ChequeNumber:    row.ChequeNumber,
		ChequeDate:      row.ChequeDate,
		DiscountAmount:  row.DiscountAmount,
		Shipping:        row.Shipping,
		Packaging:       row.Packaging,
		Adjustment:      row.Adjustment,
		RoundOff:        row.RoundOff,
		PaidAmount:      row.PaidAmount,
		Total:           row.Total,
		TaxAmount:       row.TaxAmount,
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		Items:           []domain.DocumentItem{},
		Charges:         []domain.Charge{},
		Transportation:  []domain.Transportation{},
	}
	if row.BalanceAmount.Valid {
		balance := row.BalanceAmount.Float64
		doc.BalanceAmount = &balance
	}
	if err := unmarshalList(row.Items, &doc.Items); err != nil {
		return nil, fmt.Errorf("decoding items of %s: %w", row.ID, err)
	}
	if err := unmarshalList(row.Charges, &doc.Charges); err != nil {
		return nil, fmt.Errorf("decoding charges of %s: %w", row.ID, err)
	}
	if err := unmarshalList(row.Transportation, &doc.Transportation); err != nil {
		return nil, fmt.Errorf("decoding transportation of %s: %w", row.ID, err)
	}
	return doc, nil
}

// marshalList encodes a nil slice as [] so the NOT NULL JSONB columns never hold null.
func marshalList[T any](list []T) (json.RawMessage, error) {
	if list == nil {
		list = []T{}
	}
	return json.Marshal(list)
}

func unmarshalList[T any](raw json.RawMessage, dst *[]T) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

const documentColumns = `id, kind, status, number, document_date, party_id, party_name, country,
	transaction_type, payment_type, bank_id, cheque_number, cheque_date,
	items, charges, transportation,
	discount_amount, shipping, packaging, adjustment, round_off, paid_amount,
	total, tax_amount, balance_amount, notes, created_at, updated_at`

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	row, err := newDocumentRow(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}

	query := `INSERT INTO documents (` + documentColumns + `) VALUES (
		:id, :kind, :status, :number, :document_date, :party_id, :party_name, :country,
		:transaction_type, :payment_type, :bank_id, :cheque_number, :cheque_date,
		:items, :charges, :transportation,
		:discount_amount, :shipping, :packaging, :adjustment, :round_off, :paid_amount,
		:total, :tax_amount, :balance_amount, :notes, :created_at, :updated_at
	)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var row documentRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+documentColumns+" FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	doc, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) List(ctx context.Context, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error) {
	where, args := buildDocumentWhere(filters)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	argN := len(args) + 1
	query := fmt.Sprintf("SELECT %s FROM documents %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		documentColumns, where, argN, argN+1)
	args = append(args, limit, offset)

	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for i := range rows {
		doc, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, total, nil
}

// buildDocumentWhere turns the listing filters into a WHERE clause with positional args.
func buildDocumentWhere(filters domain.DocumentFilters) (clause string, args []interface{}) {
	clause = "WHERE 1=1"
	argN := 1

	if filters.Kind != "" {
		clause += fmt.Sprintf(" AND kind = $%d", argN)
		args = append(args, string(filters.Kind))
		argN++
	}
	if filters.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, string(filters.Status))
		argN++
	}
	if filters.PartyName != "" {
		clause += fmt.Sprintf(" AND party_name ILIKE $%d", argN)
		args = append(args, "%"+filters.PartyName+"%")
	}
	return clause, args
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	row, err := newDocumentRow(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}

	query := `UPDATE documents SET
		kind = :kind, status = :status, number = :number, document_date = :document_date,
		party_id = :party_id, party_name = :party_name, country = :country,
		transaction_type = :transaction_type, payment_type = :payment_type,
		bank_id = :bank_id, cheque_number = :cheque_number, cheque_date = :cheque_date,
		items = :items, charges = :charges, transportation = :transportation,
		discount_amount = :discount_amount, shipping = :shipping, packaging = :packaging,
		adjustment = :adjustment, round_off = :round_off, paid_amount = :paid_amount,
		total = :total, tax_amount = :tax_amount, balance_amount = :balance_amount,
		notes = :notes, updated_at = :updated_at
	WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.Update rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
