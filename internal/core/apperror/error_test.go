package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"validation", NewValidation("bad input"), CodeValidation, http.StatusBadRequest},
		{"not found", NewNotFound("topic", "t-1"), CodeNotFound, http.StatusNotFound},
		{"deleted not found", NewDeletedNotFound("topic", "t-1"), CodeNotFound, http.StatusNotFound},
		{"restore blocked", NewRestoreBlocked("question", "q-1", "topic", "t-1"), CodeRestoreBlocked, http.StatusUnprocessableEntity},
		{"domain conflict", NewDomainConflict("topic", "t-1", "slug", "react"), CodeDuplicate, http.StatusConflict},
		{"invalid transition", NewInvalidTransition("revision", "draft", "approved"), CodeInvalidTransition, http.StatusUnprocessableEntity},
		{"concurrent modification", NewConcurrentModification("topic", "t-1"), CodeConcurrentModification, http.StatusConflict},
		{"unauthorized", NewUnauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbidden("nope"), CodeForbidden, http.StatusForbidden},
		{"conflict", NewConflict("taken"), CodeConflict, http.StatusConflict},
		{"duplicate", NewDuplicate("user", "email", "a@b.c"), CodeDuplicate, http.StatusConflict},
		{"internal", NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.wantStatus, GetHTTPStatus(tt.err))
		})
	}
}

func TestRestoreBlockedDetails(t *testing.T) {
	err := NewRestoreBlocked("question", "q-1", "topic", "t-1")

	assert.Equal(t, "question", err.Details["entity"])
	assert.Equal(t, "q-1", err.Details["id"])
	assert.Equal(t, "topic", err.Details["parent"])
	assert.Equal(t, "t-1", err.Details["parent_id"])
}

func TestDomainConflictDetails(t *testing.T) {
	err := NewDomainConflict("topic", "t-1", "slug", "react")

	assert.Equal(t, "slug", err.Details["constraint"])
	assert.Equal(t, "react", err.Details["value"])
	// Same code as a plain duplicate so clients handle both alike.
	assert.True(t, IsDuplicate(err))
}

func TestWithDetailAndCause(t *testing.T) {
	cause := errors.New("pq: duplicate key")
	err := NewValidation("bad slug").
		WithDetail("field", "slug").
		WithDetail("value", "React!").
		WithCause(cause)

	assert.Equal(t, "slug", err.Details["field"])
	assert.Equal(t, "React!", err.Details["value"])
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by")
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("x", 1)))
	assert.True(t, IsRestoreBlocked(NewRestoreBlocked("x", 1, "p", 2)))
	assert.True(t, IsDuplicate(NewDuplicate("x", "f", "v")))
	assert.True(t, IsValidation(NewValidation("x")))
	assert.True(t, IsForbidden(NewForbidden("x")))
	assert.True(t, IsInvalidTransition(NewInvalidTransition("x", "a", "b")))
	assert.True(t, IsConcurrentModification(NewConcurrentModification("x", 1)))

	assert.False(t, IsNotFound(NewValidation("x")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := NewNotFound("topic", "t-1")
	wrapped := fmt.Errorf("loading topic: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(wrapped))
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}
