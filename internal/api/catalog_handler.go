package api

import (
	"context"
	"net/http"

	"github.com/we-edu/enrollment-api/internal/api/shared"
	"github.com/we-edu/enrollment-api/internal/service/catalog"
)

// ProgramListResponse wraps the catalog result for the wire.
type ProgramListResponse struct {
	OK   bool                `json:"ok"`
	Data *catalog.ListResult `json:"data"`
}

// CatalogService is the surface of the catalog service the handler uses.
type CatalogService interface {
	List(ctx context.Context, p catalog.ListParams) (*catalog.ListResult, error)
}

// CatalogHandler serves the program-catalog read path.
type CatalogHandler struct {
	programs CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(programs CatalogService) *CatalogHandler {
	return &CatalogHandler{programs: programs}
}

// ProgramList handles POST /programlist requests. An empty body means "no
// filters"; pagination defaults are applied by the service.
func (h *CatalogHandler) ProgramList(w http.ResponseWriter, r *http.Request) {
	var params catalog.ListParams
	if r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &params); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	result, err := h.programs.List(r.Context(), params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProgramListResponse{OK: true, Data: result})
}
