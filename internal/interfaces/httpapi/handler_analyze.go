package httpapi

import "net/http"

// Analyze always answers 200 with a usable recommendation; reasoning
// failures degrade to the local heuristic inside the service.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Analyze")
	defer span.End()

	var req analyzeRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := req.input()
	result := h.advisory.Analyze(ctx, input)
	h.logger.DebugContext(ctx, "analysis served", "mode", result.Mode, "requested_mode", input.Mode)

	writeJSON(ctx, w, http.StatusOK, result)
}
