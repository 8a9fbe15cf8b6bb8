package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billbook/internal/domain"
	"billbook/internal/service"
)

// CalculateHandler serves stateless pricing: no document is read or written.
type CalculateHandler struct {
	calculatorService service.CalculatorService
	documentService   service.DocumentService
}

// NewCalculateHandler creates a new CalculateHandler.
func NewCalculateHandler(calculatorService service.CalculatorService, documentService service.DocumentService) *CalculateHandler {
	return &CalculateHandler{calculatorService: calculatorService, documentService: documentService}
}

// Line handles POST /api/v1/calculate/line
func (h *CalculateHandler) Line(c *gin.Context) {
	var req struct {
		Country string              `json:"country"`
		Kind    domain.DocumentKind `json:"kind"`
		Item    domain.DocumentItem `json:"item"`
		Field   domain.ItemField    `json:"field"`
		Value   any                 `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object with an item")
		return
	}

	item, err := h.calculatorService.CalculateLine(c.Request.Context(), &service.LineCalculationInput{
		Country: req.Country,
		Kind:    req.Kind,
		Item:    req.Item,
		Field:   req.Field,
		Value:   req.Value,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Document handles POST /api/v1/calculate/document
func (h *CalculateHandler) Document(c *gin.Context) {
	var doc domain.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a document")
		return
	}
	if doc.Kind != "" && !doc.Kind.IsValid() {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "kind must be one of: sale, purchase")
		return
	}
	if doc.TransactionType != "" && !doc.TransactionType.IsValid() {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "transaction_type must be one of: cash, credit")
		return
	}

	result, err := h.documentService.Calculate(c.Request.Context(), &doc)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
