package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/jeopardy-go2/internal/model"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.ErrUnknownCategory, http.StatusBadRequest},
		{model.ErrInsufficientPlayers, http.StatusBadRequest},
		{model.ErrCellAnswered, http.StatusConflict},
		{model.ErrMatchComplete, http.StatusConflict},
		{model.ErrInvalidSnapshot, http.StatusUnprocessableEntity},
		{model.ErrSaveNotFound, http.StatusNotFound},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, StatusFor(tt.err))
		})
	}
}

func TestWriteErrorUnwrapsSentinels(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("restore %q: %w", "friday", model.ErrInvalidSnapshot))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeInvalidSnapshot, resp.Error.Code)
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("connection refused to 10.0.0.5"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeInternalError, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "10.0.0.5")
}
