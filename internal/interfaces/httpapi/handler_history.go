package httpapi

import (
	"net/http"

	"github.com/riskibarqy/live-corners/internal/domain/history"
)

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHistory")
	defer span.End()

	items, err := h.history.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, historyListResponse{Items: items})
}

func (h *Handler) AppendHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AppendHistory")
	defer span.End()

	var entry history.Entry
	if err := h.decodeJSON(ctx, r, &entry, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	count, err := h.history.Append(ctx, entry)
	if err != nil {
		h.logger.WarnContext(ctx, "append history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, countResponse{OK: true, Count: count})
}

func (h *Handler) PatchHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PatchHistory")
	defer span.End()

	entryID := r.PathValue("id")
	patch := history.Entry{}
	if err := h.decodeJSON(ctx, r, &patch, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.history.Patch(ctx, entryID, patch); err != nil {
		h.logger.WarnContext(ctx, "patch history failed", "id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, okResponse{OK: true})
}
