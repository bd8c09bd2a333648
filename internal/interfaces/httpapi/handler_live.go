package httpapi

import "net/http"

func (h *Handler) ListLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLive")
	defer span.End()

	result := h.liveList.List(ctx)
	items, ok := result.Entry.Value()
	if !ok {
		writeUpstreamFailure(ctx, w, failureResponse{OK: false, Error: result.Entry.Error})
		return
	}

	writeJSON(ctx, w, http.StatusOK, liveListResponse{
		OK:        true,
		Cached:    result.Cached,
		Items:     items,
		UpdatedAt: result.Entry.UpdatedAt,
	})
}

func (h *Handler) SetFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetFixtures")
	defer span.End()

	var req setFixturesRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.watchList.SetFixtures(ctx, req.ids())
	if err != nil {
		h.logger.WarnContext(ctx, "set fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, setFixturesResponse{OK: true, WatchListState: state})
}

func (h *Handler) Snapshots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Snapshots")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, h.watchList.Snapshots(ctx))
}

func (h *Handler) ForceRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ForceRefresh")
	defer span.End()

	report, err := h.watchList.Refresh(ctx, true)
	if err != nil {
		h.logger.WarnContext(ctx, "force refresh failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, forceRefreshResponse{OK: true, At: report.At})
}

func (h *Handler) EvaluateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EvaluateFixture")
	defer span.End()

	fixtureID := r.PathValue("fixtureId")
	result, err := h.evaluations.Evaluate(ctx, fixtureID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	evaluation, ok := result.Entry.Value()
	if !ok {
		writeUpstreamFailure(ctx, w, failureResponse{OK: false, Cached: result.Cached, Error: result.Entry.Error})
		return
	}

	writeJSON(ctx, w, http.StatusOK, evaluationResponse{
		OK:        true,
		Cached:    result.Cached,
		Snapshot:  evaluation.Snapshot,
		Heuristic: evaluation.Heuristic,
	})
}

