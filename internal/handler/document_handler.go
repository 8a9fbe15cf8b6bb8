package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billbook/internal/document"
	"billbook/internal/domain"
	"billbook/internal/export"
	"billbook/internal/service"
)

// DocumentHandler handles stored document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Create handles POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req struct {
		Kind            domain.DocumentKind    `json:"kind"`
		TransactionType domain.TransactionType `json:"transaction_type"`
		Country         string                 `json:"country"`
		Document        *domain.Document       `json:"document"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
			return
		}
	}
	if req.Kind != "" && !req.Kind.IsValid() {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "kind must be one of: sale, purchase")
		return
	}
	if req.TransactionType != "" && !req.TransactionType.IsValid() {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "transaction_type must be one of: cash, credit")
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), &service.CreateDocumentInput{
		Kind:            req.Kind,
		TransactionType: req.TransactionType,
		Country:         req.Country,
		Document:        req.Document,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	filters := domain.DocumentFilters{
		Kind:      domain.DocumentKind(c.Query("kind")),
		Status:    domain.DocumentStatus(c.Query("status")),
		PartyName: c.Query("party_name"),
	}
	if filters.Kind != "" && !filters.Kind.IsValid() {
		RespondError(c, http.StatusBadRequest, "INVALID_FILTER", "kind must be one of: sale, purchase")
		return
	}
	switch filters.Status {
	case "", domain.DocumentStatusDraft, domain.DocumentStatusSubmitted:
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FILTER", "status must be one of: draft, submitted")
		return
	}

	docs, total, err := h.documentService.List(c.Request.Context(), filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// ApplyCommands handles POST /api/v1/documents/:id/commands. The body is a JSON array of
// {"type": ..., "payload": {...}} envelopes applied in order.
func (h *DocumentHandler) ApplyCommands(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return
	}
	cmds, err := document.DecodeCommands(body)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCommand) {
			RespondError(c, http.StatusBadRequest, "UNKNOWN_COMMAND", err.Error())
			return
		}
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if len(cmds) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "at least one command is required")
		return
	}

	result, err := h.documentService.Apply(c.Request.Context(), docID, cmds)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Validate handles POST /api/v1/documents/:id/validate
func (h *DocumentHandler) Validate(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	report, err := h.documentService.Validate(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Submit handles POST /api/v1/documents/:id/submit. A rejected submission answers 422 with
// the validation report as data.
func (h *DocumentHandler) Submit(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	doc, report, err := h.documentService.Submit(c.Request.Context(), docID)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailed) && report != nil {
			status, code, msg := MapDomainError(err)
			RespondErrorWithData(c, status, code, msg, report)
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"document": doc, "validation": report})
}

// Export handles GET /api/v1/documents/:id/export?format=csv|xlsx&archive=true. Archived
// exports answer with a presigned download URL instead of the file.
func (h *DocumentHandler) Export(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}
	archive, _ := strconv.ParseBool(c.DefaultQuery("archive", "false"))

	out, err := h.documentService.Export(c.Request.Context(), docID, format, archive)
	if err != nil {
		HandleError(c, err)
		return
	}

	if out.DownloadURL != "" {
		RespondOK(c, gin.H{
			"filename":     out.Filename,
			"archive_key":  out.ArchiveKey,
			"download_url": out.DownloadURL,
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

func parseDocumentID(c *gin.Context) (uuid.UUID, bool) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return uuid.Nil, false
	}
	return docID, true
}
