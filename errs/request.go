package errs

import (
	"errors"
	"net/http"
)

// Authentication & Authorization Errors
var (
	ErrMissingAPIKey      = errors.New("missing API key")
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrAPIKeyNotConfigure = errors.New("API key not configured")
)

// Authentication & Authorization Error Constructors
func NewMissingAPIKeyError(header string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        errors.New("API Key missing. Add '" + header + "' header to your request."),
		kind:       ErrMissingAPIKey,
		Field:      "authorization",
	}
}

func NewInvalidAPIKeyError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        errors.New("Invalid API Key"),
		kind:       ErrInvalidAPIKey,
		Field:      "authorization",
	}
}

// NewAPIKeyNotConfiguredError is returned in production when no write key is set.
func NewAPIKeyNotConfiguredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New("API Key validation not configured. Contact administrator."),
		kind:       ErrAPIKeyNotConfigure,
	}
}

// Authentication & Authorization Error Type Checkers
func IsMissingAPIKeyError(err error) bool {
	return errors.Is(err, ErrMissingAPIKey)
}

func IsInvalidAPIKeyError(err error) bool {
	return errors.Is(err, ErrInvalidAPIKey)
}
