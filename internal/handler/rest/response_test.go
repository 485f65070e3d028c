package hrest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ledger-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("%w: investor x", domain.ErrNotFound), want: http.StatusNotFound},
		{name: "invalid amount", err: fmt.Errorf("%w: -5", domain.ErrInvalidAmount), want: http.StatusBadRequest},
		{name: "invalid date", err: fmt.Errorf("%w: soon", domain.ErrInvalidDate), want: http.StatusBadRequest},
		{name: "invalid request", err: fmt.Errorf("%w: bad type", domain.ErrInvalidRequest), want: http.StatusBadRequest},
		{name: "invariant violation", err: fmt.Errorf("%w: second initial", domain.ErrInvariantViolation), want: http.StatusConflict},
		{name: "persistence failure", err: fmt.Errorf("%w: commit", domain.ErrPersistenceFailure), want: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Contains(t, resp.Message, tt.err.Error())
		})
	}
}

func TestJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Empty(t, resp.Message)
}
