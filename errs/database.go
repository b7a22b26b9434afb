package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrTransactionFailed         = errors.New("transaction failed")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
	ErrStorageUnavailable        = errors.New("storage unavailable")
)

// NewDatabaseError wraps a store failure. Every variant reports 500; the kind
// only refines logging and lets callers detect constraint violations.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	kind := ErrDatabaseQuery
	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "unique constraint"):
			kind = ErrUniqueConstraintViolation
		case strings.Contains(errStr, "foreign key constraint"):
			kind = ErrForeignKeyConstraint
		case strings.Contains(errStr, "connection"), strings.Contains(errStr, "connect:"):
			kind = ErrDatabaseConnection
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New("Internal server error"),
		kind:       kind,
		Details:    details,
		Cause:      cause,
	}
}

func NewTransactionFailedError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New("Internal server error"),
		kind:       ErrTransactionFailed,
		Details:    fmt.Sprintf("Transaction failed during %s", operation),
		Cause:      cause,
		Field:      "transaction",
	}
}

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New("Internal server error"),
		kind:       ErrStorageUnavailable,
		Details:    fmt.Sprintf("Storage failure during %s", operation),
		Cause:      cause,
	}
}

// Database & Storage Error Type Checkers
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseQuery) ||
		errors.Is(err, ErrDatabaseConnection) ||
		errors.Is(err, ErrUniqueConstraintViolation) ||
		errors.Is(err, ErrForeignKeyConstraint) ||
		errors.Is(err, ErrTransactionFailed)
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}
