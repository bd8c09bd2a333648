package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/live-corners/internal/config"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

func TestNew_FileBackedWithoutKeys(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:        ":0",
		HistoryFile:     filepath.Join(t.TempDir(), "history.json"),
		HistoryMaxItems: 500,
	}

	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	if a.Scheduler == nil {
		t.Fatalf("expected refresh scheduler")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "heuristic_only") {
		t.Fatalf("expected heuristic_only analysis, got %s", rec.Body.String())
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	if _, err := New(context.Background(), config.Config{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error without http addr")
	}
}

func TestNew_RejectsBadPolicyFile(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:         ":0",
		SignalPolicyFile: filepath.Join(t.TempDir(), "missing.yaml"),
	}
	_, err := New(context.Background(), cfg, logging.NewNop())
	if err == nil || !strings.Contains(err.Error(), "load signal policy") {
		t.Fatalf("expected policy load error, got %v", err)
	}
}
