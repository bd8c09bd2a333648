package httpapi

import (
	"net/http"
	"os"
	"strings"

	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /healthz", handler.Health)
}

func registerLiveRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/live/list", handler.ListLive)
	mux.HandleFunc("POST /api/live/set-fixtures", handler.SetFixtures)
	mux.HandleFunc("GET /api/live/snapshots", handler.Snapshots)
	mux.HandleFunc("POST /api/live/force-refresh", handler.ForceRefresh)
	mux.HandleFunc("GET /api/live/eval/{fixtureId}", handler.EvaluateFixture)
}

func registerAdvisoryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/analyze", handler.Analyze)
}

func registerHistoryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/history", handler.ListHistory)
	mux.HandleFunc("POST /api/history", handler.AppendHistory)
	mux.HandleFunc("PATCH /api/history/{id}", handler.PatchHistory)
}

func registerStaticRoutes(mux *http.ServeMux, dir string, logger *logging.Logger) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Info("static front end disabled", "dir", dir, "reason", "directory not found")
		return
	}
	mux.Handle("GET /", http.FileServer(http.Dir(dir)))
}
