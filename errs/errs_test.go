package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := NewNotFoundError("Project with id 7 not found")

	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, IsBadRequest(err))
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "Project with id 7 not found", err.Error())

	wrapped := fmt.Errorf("service: %w", err)
	var apiErr *ApiErr
	require.True(t, errors.As(wrapped, &apiErr))
	assert.True(t, IsNotFound(wrapped))
}

func TestValidationKinds(t *testing.T) {
	cases := []error{
		NewBadRequestErrorWithField("Name cannot be empty", "name"),
		NewMalformedPayloadError("project", errors.New("unexpected EOF")),
		NewMissingRequiredFieldError("file", "No file uploaded"),
		NewInvalidFieldError("id", "invalid id"),
	}
	for _, err := range cases {
		assert.True(t, IsValidation(err), err.Error())
		assert.False(t, IsNotFound(err), err.Error())
	}
	assert.False(t, IsValidation(NewInternalError("boom")))
}

func TestDatabaseErrorIsAlways500(t *testing.T) {
	cases := []error{
		nil,
		errors.New("ERROR: duplicate key value violates unique constraint"),
		errors.New("violates foreign key constraint"),
		errors.New("dial tcp: connect: connection refused"),
		errors.New("syntax error"),
	}
	for _, cause := range cases {
		err := NewDatabaseError("insert", "project", cause)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "Internal server error", err.Message())
		assert.True(t, IsDatabaseError(err))
	}

	dup := NewDatabaseError("insert", "project", errors.New("duplicate key"))
	assert.True(t, IsUniqueConstraintViolationError(dup))
}

func TestCauseIsReachable(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("save resume", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, "Internal server error: Storage failure during save resume -> disk full", err.GetFullError())
}

func TestAPIKeyErrors(t *testing.T) {
	missing := NewMissingAPIKeyError("X-API-Key")
	assert.Equal(t, "API Key missing. Add 'X-API-Key' header to your request.", missing.Error())
	assert.Equal(t, http.StatusUnauthorized, missing.StatusCode)
	assert.True(t, IsMissingAPIKeyError(missing))

	invalid := NewInvalidAPIKeyError()
	assert.Equal(t, "Invalid API Key", invalid.Error())
	assert.True(t, IsInvalidAPIKeyError(invalid))

	notConfigured := NewAPIKeyNotConfiguredError()
	assert.Equal(t, http.StatusInternalServerError, notConfigured.StatusCode)
}

func TestConflict(t *testing.T) {
	err := NewConflictError("Profile was created concurrently, retry the request")

	assert.Equal(t, http.StatusConflict, err.StatusCode)
	assert.True(t, IsConflict(err))
	assert.False(t, IsValidation(err))
}
