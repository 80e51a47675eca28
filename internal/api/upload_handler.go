package api

import (
	"context"
	"net/http"

	"github.com/we-edu/enrollment-api/internal/api/shared"
	"github.com/we-edu/enrollment-api/internal/service/upload"
)

// SignUploadRequest is the payload for the upload-sign endpoint.
type SignUploadRequest struct {
	ContentType string `json:"contentType" validate:"required"`
	Side        string `json:"side"        validate:"required,oneof=front back"`
}

// UploadService is the surface of the upload service the handler uses.
type UploadService interface {
	IssueUpload(ctx context.Context, contentType, side string) (*upload.Grant, error)
	ResolveDownload(ctx context.Context, key string) (string, error)
}

// UploadHandler serves the signed upload/download endpoints.
type UploadHandler struct {
	uploads UploadService
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(uploads UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// SignUpload handles POST /upload/sign requests. It validates the content
// type and side and responds with a write-scoped signed URL plus the
// derived storage key.
func (h *UploadHandler) SignUpload(w http.ResponseWriter, r *http.Request) {
	var req SignUploadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "contentType and side are required")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "contentType and side are required")
		return
	}

	grant, err := h.uploads.IssueUpload(r.Context(), req.ContentType, req.Side)
	if err != nil {
		status := MapErrorToStatusCode(err)
		if status >= http.StatusInternalServerError {
			shared.RespondWithErrorAndLog(w, r, status, "Could not generate signed URL", err)
			return
		}
		shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, grant)
}

// ViewFile handles GET /file/view requests by redirecting to a read-scoped
// signed URL for the given key. A missing key is a 400; any resolution
// failure is reported as 404 so the response does not distinguish
// permission problems from absent objects.
func (h *UploadHandler) ViewFile(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "key is required")
		return
	}

	signed, err := h.uploads.ResolveDownload(r.Context(), key)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, "File not found or not accessible", err)
		return
	}

	http.Redirect(w, r, signed, http.StatusFound)
}
