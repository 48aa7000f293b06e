package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := Internal(cause)

	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.ErrorIs(t, appErr, cause)
}

func TestNotFound(t *testing.T) {
	err := NotFound("product", "prod-1")

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Message, "prod-1")
}

func TestSearchUnavailable(t *testing.T) {
	cause := errors.New("pool closed")
	err := SearchUnavailable(cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", InvalidInput("bad"), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("get product: %w", ErrNotFound), http.StatusNotFound},
		{"wrapped conflict", fmt.Errorf("insert: %w", ErrAlreadyExists), http.StatusConflict},
		{"search unavailable", fmt.Errorf("search: %w", ErrSearchUnavailable), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
