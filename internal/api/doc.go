// Package api implements the HTTP handlers for the enrollment service:
// signed upload/download issuance, enrollment submission, and the
// program-catalog listing. Handlers depend on narrow service interfaces
// and translate service errors into sanitized HTTP responses.
package api
