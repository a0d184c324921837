package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *AppError
		code int
	}{
		{"validation", NewValidationError("bad", cause), http.StatusBadRequest},
		{"not found", NewNotFoundError("missing", cause), http.StatusNotFound},
		{"conflict", NewConflictError("busy", cause), http.StatusConflict},
		{"unprocessable", NewUnprocessableError("columns", cause), http.StatusUnprocessableEntity},
		{"too large", NewPayloadTooLargeError("big", cause), http.StatusRequestEntityTooLarge},
		{"internal", NewInternalError("db", cause), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.StatusCode())
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	err := NewInternalError("failed to write workbook", errors.New("disk full"))

	assert.Equal(t, "Внутренняя ошибка сервера", err.UserMessage())
	assert.Contains(t, err.Error(), "disk full")
}

func TestWithContextKeepsStatus(t *testing.T) {
	err := NewNotFoundError("session not found", nil).WithContext("/api/uploads/:id")

	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.Equal(t, "/api/uploads/:id", err.GetContext())
	assert.Equal(t, "session not found", err.Error())
}
