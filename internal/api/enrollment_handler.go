package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/we-edu/enrollment-api/internal/api/shared"
	"github.com/we-edu/enrollment-api/internal/redact"
	"github.com/we-edu/enrollment-api/internal/service/enrollment"
)

// SubmissionResponse is the success body of the enrollment endpoint.
type SubmissionResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// SubmissionErrorResponse is the failure body of the enrollment endpoint.
type SubmissionErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// EnrollmentService is the surface of the enrollment service the handler
// uses.
type EnrollmentService interface {
	Submit(ctx context.Context, sub enrollment.Submission) error
}

// EnrollmentHandler serves the enrollment submission endpoint.
type EnrollmentHandler struct {
	enrollments EnrollmentService
}

// NewEnrollmentHandler creates an EnrollmentHandler.
func NewEnrollmentHandler(enrollments EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Submit handles POST /inscripcion requests. Downstream failures are
// reported with a generic message; the full error context stays in the
// structured log.
func (h *EnrollmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub enrollment.Submission
	if err := shared.DecodeJSON(r, &sub); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(sub); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.enrollments.Submit(r.Context(), sub); err != nil {
		slog.LogAttrs(r.Context(), slog.LevelError, "enrollment submission failed",
			slog.String("trace_id", shared.GetTraceID(r.Context())),
			slog.String("error", redact.Error(err)))
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, SubmissionErrorResponse{
			OK:    false,
			Error: "Error al guardar los datos",
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SubmissionResponse{
		OK:      true,
		Message: "Datos guardados correctamente",
	})
}
