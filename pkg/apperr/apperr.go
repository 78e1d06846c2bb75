// Package apperr defines the error taxonomy shared by handlers, services and
// repositories, and maps store-level failures onto it.
package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

const (
	CodeUnauthenticated  = "unauthenticated"
	CodeValidation       = "validation_failed"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeUnavailable      = "unavailable"
	CodeInvalidSignature = "invalid_signature"
	CodeInternal         = "internal_error"
)

type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError carries per-field validation detail back to the client.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Unauthenticated(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeUnauthenticated, Message: message}
}

func Validation(details []FieldError) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: "Validation failed", Details: details}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeConflict, Message: message}
}

func Unavailable(message string) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Code: CodeUnavailable, Message: message}
}

func InvalidSignature(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeInvalidSignature, Message: message}
}

func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message}
}

// Postgres error classes we care about. Class 08 is connection exceptions.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgConnectionClass     = "08"
)

// FromStore classifies a database error into the taxonomy. sql.ErrNoRows maps
// to NotFound so that ownership mismatch and true absence stay
// indistinguishable to callers.
func FromStore(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NotFound("Not found")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pgUniqueViolation:
			return Conflict("Resource already exists")
		case pqErr.Code == pgForeignKeyViolation:
			return Conflict("Referenced resource does not exist")
		case pqErr.Code.Class() == pgConnectionClass:
			return Unavailable("Database connection error. Please try again.")
		}
	}
	return Internal("Internal server error")
}

// IsUniqueViolation reports whether err is a unique-constraint violation on
// the named constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
