package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

// Every status writeError can produce comes from a sentinel a service
// actually returns; anything unrecognized falls through to 500.
func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{"not found", core.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"validation", core.ErrValidation, http.StatusBadRequest, "Validation Error"},
		{"conflict", core.ErrConflict, http.StatusConflict, "Conflict"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "Timeout"},
		{"wrapped not found", fmt.Errorf("contracts.get 42: %w", core.ErrNotFound), http.StatusNotFound, "Not Found"},
		{"unrecognized", errors.New("connection reset"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), testLogger(), rec, tt.err, "detail")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantTitle)
		})
	}
}
