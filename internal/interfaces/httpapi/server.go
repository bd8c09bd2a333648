package httpapi

import (
	"net/http"

	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	// StaticDir is served at / when it exists. Empty disables the front end.
	StaticDir string
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerLiveRoutes(mux, handler)
	registerAdvisoryRoutes(mux, handler)
	registerHistoryRoutes(mux, handler)
	registerStaticRoutes(mux, cfg.StaticDir, logger)

	return RequestTracing(RequestID(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, LimitBody(MaxBodyBytes, recoverPanic(logger, mux))))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
