package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"billbook/internal/document"
	"billbook/internal/domain"
	"billbook/internal/export"
	"billbook/internal/metrics"
	"billbook/internal/port"
	"billbook/internal/pricing"
	"billbook/internal/validator"
)

// DocumentDefaults are applied to documents created without an explicit value.
type DocumentDefaults struct {
	Country         string
	Kind            domain.DocumentKind
	TransactionType domain.TransactionType
}

// CreateDocumentInput is the DTO for creating a document. A nil Document starts an empty draft
// with one empty row.
type CreateDocumentInput struct {
	Kind            domain.DocumentKind
	TransactionType domain.TransactionType
	Country         string
	Document        *domain.Document
}

// CalculationResult is a settled document together with its totals.
type CalculationResult struct {
	Document          domain.Document        `json:"document"`
	Totals            pricing.Totals         `json:"totals"`
	SuggestedRoundOff float64                `json:"suggested_round_off"`
	ValidationState   domain.ValidationState `json:"validation_state"`
}

// ExportOutput carries a rendered export. ArchiveKey and DownloadURL are set only when the
// export was archived to object storage.
type ExportOutput struct {
	Filename    string
	ContentType string
	Data        []byte
	ArchiveKey  string
	DownloadURL string
}

// DocumentService defines the document management contract.
type DocumentService interface {
	Create(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Calculate(ctx context.Context, doc *domain.Document) (*CalculationResult, error)
	Apply(ctx context.Context, id uuid.UUID, cmds []document.Command) (*CalculationResult, error)
	Validate(ctx context.Context, id uuid.UUID) (*validator.Report, error)
	Submit(ctx context.Context, id uuid.UUID) (*domain.Document, *validator.Report, error)
	Export(ctx context.Context, id uuid.UUID, format export.Format, archive bool) (*ExportOutput, error)
}

type documentService struct {
	docRepo    port.DocumentRepository
	refService ReferenceService
	archive    port.ExportArchive
	linkTTL    time.Duration
	defaults   DocumentDefaults
}

// NewDocumentService creates a new DocumentService. A nil archive disables export archiving;
// linkTTL bounds the lifetime of archive download links.
func NewDocumentService(
	docRepo port.DocumentRepository,
	refService ReferenceService,
	archive port.ExportArchive,
	linkTTL time.Duration,
	defaults DocumentDefaults,
) DocumentService {
	return &documentService{
		docRepo:    docRepo,
		refService: refService,
		archive:    archive,
		linkTTL:    linkTTL,
		defaults:   defaults,
	}
}

func (s *documentService) Create(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error) {
	kind := input.Kind
	if kind == "" {
		kind = s.defaults.Kind
	}
	txType := input.TransactionType
	if txType == "" {
		txType = s.defaults.TransactionType
	}

	var doc domain.Document
	if input.Document != nil {
		doc = input.Document.Clone()
		if doc.Kind == "" {
			doc.Kind = kind
		}
		if doc.TransactionType == "" {
			doc.TransactionType = txType
		}
	} else {
		doc = domain.NewDocument(kind, txType)
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if input.Country != "" {
		doc.Country = input.Country
	}
	if doc.Country == "" {
		doc.Country = s.defaults.Country
	}
	doc.Status = domain.DocumentStatusDraft

	if !doc.Kind.IsValid() || !doc.TransactionType.IsValid() {
		return nil, fmt.Errorf("kind %q, transaction type %q: %w", doc.Kind, doc.TransactionType, domain.ErrInvalidDocument)
	}

	settled, err := s.settle(ctx, &doc)
	if err != nil {
		return nil, err
	}
	if err := s.docRepo.Create(ctx, &settled.Document); err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	log.Printf("documentService.Create: document %s created (kind=%s, items=%d, total=%.2f)",
		settled.Document.ID, settled.Document.Kind, len(settled.Document.Items), settled.Document.Total)
	return &settled.Document, nil
}

func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.List(ctx, filters, offset, limit)
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("documentService.Delete: document %s deleted", id)

	if s.archive != nil {
		n, err := s.archive.RemovePrefix(ctx, archivePrefix(id))
		if err != nil {
			log.Printf("documentService.Delete: failed to remove archived exports of %s: %v", id, err)
		} else if n > 0 {
			log.Printf("documentService.Delete: removed %d archived exports of %s", n, id)
		}
	}
	return nil
}

// Calculate re-derives every item of doc and its totals without persisting anything.
func (s *documentService) Calculate(ctx context.Context, doc *domain.Document) (*CalculationResult, error) {
	in := doc.Clone()
	if in.Kind == "" {
		in.Kind = s.defaults.Kind
	}
	if in.TransactionType == "" {
		in.TransactionType = s.defaults.TransactionType
	}
	if in.Country == "" {
		in.Country = s.defaults.Country
	}
	return s.settle(ctx, &in)
}

// settle refreshes every item against the country's reference data, then runs the totals
// pipeline through a store. Amounts are always re-derived from price and quantities, so an
// amount typed through ReverseFromAmount settles to the forward value of its rounded price.
func (s *documentService) settle(ctx context.Context, doc *domain.Document) (*CalculationResult, error) {
	refs, err := s.refService.Snapshot(ctx, doc.Country)
	if err != nil {
		return nil, err
	}

	editor := pricing.NewEditor(refs, doc.Kind, doc.Country)
	for i := range doc.Items {
		editor.Refresh(&doc.Items[i])
	}

	store := document.NewStore(refs, nil, *doc)
	metrics.ObserveRecalculations(store.RecomputeCount(), store.WriteCount())
	return resultOf(store), nil
}

func (s *documentService) open(ctx context.Context, id uuid.UUID) (*domain.Document, *document.Store, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	refs, err := s.refService.Snapshot(ctx, doc.Country)
	if err != nil {
		return nil, nil, err
	}
	store := document.NewStore(refs, nil, *doc)
	if err := store.Dispatch(document.SetMode{Mode: domain.DocumentModeEdit}); err != nil {
		return nil, nil, err
	}
	return doc, store, nil
}

// Apply dispatches cmds in order against the stored draft and persists the result. The first
// failing command aborts the batch and nothing is saved. Identity and status survive
// SetDocument and Reset.
func (s *documentService) Apply(ctx context.Context, id uuid.UUID, cmds []document.Command) (*CalculationResult, error) {
	original, store, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.DocumentStatusSubmitted {
		return nil, domain.ErrDocumentSubmitted
	}
	runsBefore, writesBefore := store.RecomputeCount(), store.WriteCount()

	for i, cmd := range cmds {
		err := store.Dispatch(cmd)
		metrics.ObserveCommand(string(cmd.Type()), err)
		if err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	metrics.ObserveRecalculations(store.RecomputeCount()-runsBefore, store.WriteCount()-writesBefore)

	updated := store.Document()
	updated.ID = original.ID
	updated.CreatedAt = original.CreatedAt
	updated.Status = original.Status
	if err := s.docRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}
	result := resultOf(store)
	result.Document = updated
	return result, nil
}

func (s *documentService) Validate(ctx context.Context, id uuid.UUID) (*validator.Report, error) {
	_, store, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	report, err := store.ValidateAll(ctx)
	if err != nil {
		return nil, err
	}
	metrics.ValidationsTotal.WithLabelValues(string(report.Status)).Inc()
	return report, nil
}

// Submit validates the document and, when no error-severity rule fails, persists it as
// submitted. A failing validation returns the report with ErrValidationFailed.
func (s *documentService) Submit(ctx context.Context, id uuid.UUID) (*domain.Document, *validator.Report, error) {
	original, store, err := s.open(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if original.Status == domain.DocumentStatusSubmitted {
		return nil, nil, domain.ErrDocumentSubmitted
	}

	report, err := store.ValidateAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	metrics.ValidationsTotal.WithLabelValues(string(report.Status)).Inc()
	if report.HasErrors() {
		return nil, report, domain.ErrValidationFailed
	}

	if err := store.BeginSubmit(); err != nil {
		return nil, report, err
	}

	submitted := store.Document()
	submitted.Status = domain.DocumentStatusSubmitted
	saveErr := s.docRepo.Update(ctx, &submitted)
	if err := store.EndSubmit(saveErr); err != nil {
		return nil, report, err
	}
	if saveErr != nil {
		return nil, report, fmt.Errorf("saving submitted document: %w", saveErr)
	}

	log.Printf("documentService.Submit: document %s submitted (total=%.2f, warnings=%d)",
		submitted.ID, submitted.Total, report.Summary.Warnings)
	return &submitted, report, nil
}

// Export renders the document. With archive set and an archive configured, the file is also
// stored and a presigned download URL is returned.
func (s *documentService) Export(ctx context.Context, id uuid.UUID, format export.Format, archive bool) (*ExportOutput, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := export.Render(doc, format)
	if err != nil {
		return nil, err
	}
	out := &ExportOutput{
		Filename:    export.BuildFilename(doc, format),
		ContentType: format.ContentType(),
		Data:        data,
	}

	if !archive {
		return out, nil
	}
	if s.archive == nil {
		log.Printf("documentService.Export: archive requested for %s but no archive is configured", doc.ID)
		return out, nil
	}

	key := archivePrefix(doc.ID) + out.Filename
	location, err := s.archive.Put(ctx, port.ArchivedExport{
		Key:         key,
		Data:        data,
		ContentType: out.ContentType,
		Metadata: map[string]string{
			"document-id": doc.ID.String(),
			"kind":        string(doc.Kind),
			"number":      doc.Number,
		},
	})
	if err != nil {
		return nil, errors.Join(domain.ErrUploadFailed, err)
	}

	url, err := s.archive.DownloadURL(ctx, key, s.linkTTL)
	if err != nil {
		return nil, fmt.Errorf("presigning %s: %w", key, err)
	}
	out.ArchiveKey = key
	out.DownloadURL = url

	log.Printf("documentService.Export: document %s archived to %s", doc.ID, location)
	return out, nil
}

func archivePrefix(id uuid.UUID) string {
	return "exports/" + id.String() + "/"
}

func resultOf(store *document.Store) *CalculationResult {
	return &CalculationResult{
		Document:          store.Document(),
		Totals:            store.Totals(),
		SuggestedRoundOff: store.SuggestedRoundOff(),
		ValidationState:   store.State().ValidationState,
	}
}
