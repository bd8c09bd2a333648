package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/live-corners/internal/config"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "live-corners",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	stack, err := Start(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if got := stack.Enabled(); len(got) != 0 {
		t.Fatalf("expected no components, got %v", got)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_UptraceWithoutDSNStaysOff(t *testing.T) {
	stack, err := Start(context.Background(), config.Config{UptraceEnabled: true, UptraceDSN: "  "}, nil)
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if got := stack.Enabled(); len(got) != 0 {
		t.Fatalf("expected uptrace to stay off without dsn, got %v", got)
	}
}

func TestStart_PprofListener(t *testing.T) {
	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}

	stack, err := Start(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if got := stack.Enabled(); len(got) != 1 || got[0] != "pprof" {
		t.Fatalf("unexpected components: %v", got)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := stack.Enabled(); len(got) != 0 {
		t.Fatalf("components must be cleared after shutdown, got %v", got)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status got=%d want=200", rec.Code)
	}
}

func TestNilStackIsSafe(t *testing.T) {
	var stack *Stack
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil stack shutdown: %v", err)
	}
	if stack.Enabled() != nil {
		t.Fatalf("nil stack must report no components")
	}
}
