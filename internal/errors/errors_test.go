package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listenupapp/shelfnotes/internal/errors"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeConflict, http.StatusConflict},
		{errors.CodeUnauthorized, http.StatusUnauthorized},
		{errors.CodeInvalidCredentials, http.StatusUnauthorized},
		{errors.CodeTokenExpired, http.StatusUnauthorized},
		{errors.CodeForbidden, http.StatusForbidden},
		{errors.CodeValidation, http.StatusBadRequest},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := errors.Conflict("you already have a note for this book")

	assert.True(t, stderrors.Is(err, errors.ErrConflict))
	assert.False(t, stderrors.Is(err, errors.ErrNotFound))

	wrapped := fmt.Errorf("create note: %w", err)
	assert.True(t, stderrors.Is(wrapped, errors.ErrConflict))
}

func TestError_WithCause(t *testing.T) {
	cause := stderrors.New("UNIQUE constraint failed")
	err := errors.Conflict("duplicate isbn").WithCause(cause)

	assert.Equal(t, "duplicate isbn: UNIQUE constraint failed", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

func TestValidationWithDetails(t *testing.T) {
	details := map[string]string{"content": "must not be blank"}
	err := errors.ValidationWithDetails("validation failed", details)

	assert.Equal(t, details, err.Details)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.True(t, stderrors.Is(err, errors.ErrValidation))
}

func TestWithCause_KeepsDetails(t *testing.T) {
	details := map[string]string{"isbn": "already in use"}
	err := errors.ValidationWithDetails("validation failed", details).WithCause(stderrors.New("boom"))

	assert.Equal(t, details, err.Details)
	assert.Equal(t, errors.CodeValidation, err.Code)
}
