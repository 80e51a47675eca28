package api

import (
	"errors"
	"net/http"

	"github.com/we-edu/enrollment-api/internal/platform/postgres"
	"github.com/we-edu/enrollment-api/internal/service/upload"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, upload.ErrUnsupportedType),
		errors.Is(err, upload.ErrInvalidSide),
		errors.Is(err, upload.ErrMissingKey):
		return http.StatusBadRequest

	case errors.Is(err, postgres.ErrAcquireTimeout),
		errors.Is(err, postgres.ErrStatementTimeout):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for err.
// Provider and database internals are never surfaced.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, upload.ErrUnsupportedType):
		return "Content type not allowed"
	case errors.Is(err, upload.ErrInvalidSide):
		return "Invalid document side"
	case errors.Is(err, upload.ErrMissingKey):
		return "key is required"
	case errors.Is(err, postgres.ErrAcquireTimeout),
		errors.Is(err, postgres.ErrStatementTimeout):
		return "The service is busy, try again later"
	default:
		return "An unexpected error occurred"
	}
}
