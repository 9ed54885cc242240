// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationErrors wraps multiple field errors.
type ValidationErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationErrors {
	return &ValidationErrors{Detail: "Error de validacion", Fields: fields}
}

// Kind classifies service-layer errors so handlers can pick the right HTTP
// status without string-matching error messages.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInsufficientStock
	KindPermission
	KindAuthentication
)

// Error is the typed error services return for every expected failure.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func Validation(detail string) *Error { return &Error{Kind: KindValidation, Detail: detail} }
func NotFound(detail string) *Error   { return &Error{Kind: KindNotFound, Detail: detail} }
func Conflict(detail string) *Error   { return &Error{Kind: KindConflict, Detail: detail} }
func InsufficientStock(detail string) *Error {
	return &Error{Kind: KindInsufficientStock, Detail: detail}
}
func Permission(detail string) *Error     { return &Error{Kind: KindPermission, Detail: detail} }
func Authentication(detail string) *Error { return &Error{Kind: KindAuthentication, Detail: detail} }

// StatusCode maps a service error to its HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInsufficientStock:
		return http.StatusConflict
	case KindPermission:
		return http.StatusForbidden
	case KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
