package httpapi

import (
	"net/http"
)

// RunCatalogIngestJob refreshes the player pool from the external rankings
// catalog. It sits behind the internal job token, not user auth.
func (h *Handler) RunCatalogIngestJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCatalogIngestJob")
	defer span.End()

	report, err := h.ingestionService.IngestCatalog(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "catalog ingest job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
