package handler

import (
	"github.com/gin-gonic/gin"

	"billbook/internal/service"
)

// ReferenceHandler exposes the master data documents are priced against.
type ReferenceHandler struct {
	refService service.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(refService service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refService: refService}
}

// Get handles GET /api/v1/reference?country=
func (h *ReferenceHandler) Get(c *gin.Context) {
	refs, err := h.refService.Snapshot(c.Request.Context(), c.Query("country"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, refs)
}

// Invalidate handles POST /api/v1/reference/invalidate?country=
func (h *ReferenceHandler) Invalidate(c *gin.Context) {
	if err := h.refService.Invalidate(c.Request.Context(), c.Query("country")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "reference cache invalidated"})
}
