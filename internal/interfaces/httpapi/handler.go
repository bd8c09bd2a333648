package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/live-corners/internal/platform/logging"
	"github.com/riskibarqy/live-corners/internal/usecase"
)

type Handler struct {
	watchList   *usecase.WatchListService
	evaluations *usecase.EvaluationService
	liveList    *usecase.LiveListService
	advisory    *usecase.AdvisoryService
	history     *usecase.HistoryService
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(
	watchList *usecase.WatchListService,
	evaluations *usecase.EvaluationService,
	liveList *usecase.LiveListService,
	advisory *usecase.AdvisoryService,
	history *usecase.HistoryService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		watchList:   watchList,
		evaluations: evaluations,
		liveList:    liveList,
		advisory:    advisory,
		history:     history,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, okResponse{OK: true})
}

// decodeJSON reads the body into dst. An empty body leaves dst untouched
// when allowEmpty is set.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any, allowEmpty bool) error {
	_, span := startSpan(ctx, "httpapi.decodeJSON")
	defer span.End()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(raw) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: invalid body", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid body", usecase.ErrInvalidInput)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
