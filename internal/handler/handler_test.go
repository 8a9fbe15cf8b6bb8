package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"billbook/internal/domain"
	"billbook/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{fmt.Errorf("command 0 (remove_item): %w", domain.ErrItemNotFound), http.StatusNotFound, "ITEM_NOT_FOUND"},
		{domain.ErrCatalogItemNotFound, http.StatusNotFound, "CATALOG_ITEM_NOT_FOUND"},
		{domain.ErrFieldNotEditable, http.StatusBadRequest, "FIELD_NOT_EDITABLE"},
		{domain.ErrUnknownField, http.StatusBadRequest, "UNKNOWN_FIELD"},
		{domain.ErrUnitsNotAssigned, http.StatusBadRequest, "UNITS_NOT_ASSIGNED"},
		{domain.ErrUnsupportedExportFormat, http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{domain.ErrValidationFailed, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrDocumentSubmitted, http.StatusConflict, "DOCUMENT_SUBMITTED"},
		{errors.Join(domain.ErrUploadFailed, errors.New("denied")), http.StatusBadGateway, "UPLOAD_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	healthy := handler.NewHealthHandler(map[string]handler.PingFunc{
		"database": func(context.Context) error { return nil },
	})
	broken := handler.NewHealthHandler(map[string]handler.PingFunc{
		"redis": func(context.Context) error { return errors.New("refused") },
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	broken.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	healthy.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	broken.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis not reachable")
}
