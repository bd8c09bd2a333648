package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/live-corners/internal/domain/signal"
	"github.com/riskibarqy/live-corners/internal/usecase"
)

func testState() signal.GameState {
	return signal.GameState{
		Minute:        signal.NewNumber(30),
		Score:         "1-0",
		CornersTotal:  signal.NewNumber(9),
		ShotsTotal:    signal.NewNumber(12),
		ShotsOnTarget: signal.NewNumber(5),
		PressureSide:  "Mandante",
	}
}

func newRefineServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(raw), `"model":"gpt-5.2"`) {
			t.Errorf("request body missing model: %s", raw)
		}
		if !strings.Contains(string(raw), "Modo: CONSERVADOR") {
			t.Errorf("request body missing mode line: %s", raw)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{BaseURL: baseURL + "/v1", APIKey: "sk-test"})
}

func TestClient_RefineParsed(t *testing.T) {
	t.Parallel()

	body := `{"output":[{"content":[{"type":"output_text","text":"{\"acao\":\"entrar\",\"confianca\":\"81.6\",\"linha_sugerida\":\"Over 8.5\",\"checklist\":[\"a\"]}"}]}]}`
	srv := newRefineServer(t, http.StatusOK, body)

	got := newTestClient(srv.URL).Refine(context.Background(), testState(), signal.ModeConservative)
	if got.Kind != signal.RefineParsed {
		t.Fatalf("expected parsed result, got %s (err=%v raw=%q)", got.Kind, got.Err, got.Raw)
	}
	if got.Recommendation.Action != signal.ActionEnter {
		t.Fatalf("unexpected action %q", got.Recommendation.Action)
	}
	if got.Recommendation.Confidence != 82 {
		t.Fatalf("unexpected confidence %d", got.Recommendation.Confidence)
	}
	if got.Recommendation.SuggestedLine != "Over 8.5" {
		t.Fatalf("unexpected line %q", got.Recommendation.SuggestedLine)
	}
}

func TestClient_RefineFencedValueObject(t *testing.T) {
	t.Parallel()

	body := `{"output":[{"content":[{"text":{"value":"` + "```json\\n" + `{\"acao\":\"PULAR\",\"confianca\":140}` + "\\n```" + `"}}]}]}`
	srv := newRefineServer(t, http.StatusOK, body)

	got := newTestClient(srv.URL).Refine(context.Background(), testState(), signal.ModeConservative)
	if got.Kind != signal.RefineParsed {
		t.Fatalf("expected parsed result, got %s (err=%v raw=%q)", got.Kind, got.Err, got.Raw)
	}
	if got.Recommendation.Action != signal.ActionSkip || got.Recommendation.Confidence != 100 {
		t.Fatalf("unexpected recommendation %+v", got.Recommendation)
	}
}

func TestClient_RefineOutputTextFallback(t *testing.T) {
	t.Parallel()

	srv := newRefineServer(t, http.StatusOK, `{"output":[],"output_text":"{\"acao\":\"ESPERAR\"}"}`)

	got := newTestClient(srv.URL).Refine(context.Background(), testState(), signal.ModeConservative)
	if got.Kind != signal.RefineParsed {
		t.Fatalf("expected parsed result, got %s", got.Kind)
	}
	if got.Recommendation.Confidence != defaultConfidence {
		t.Fatalf("expected default confidence, got %d", got.Recommendation.Confidence)
	}
}

func TestClient_RefineRawText(t *testing.T) {
	t.Parallel()

	srv := newRefineServer(t, http.StatusOK, `{"output_text":"Aguarde mais 10 minutos."}`)

	got := newTestClient(srv.URL).Refine(context.Background(), testState(), signal.ModeConservative)
	if got.Kind != signal.RefineRawText {
		t.Fatalf("expected raw text result, got %s", got.Kind)
	}
	if got.Raw != "Aguarde mais 10 minutos." {
		t.Fatalf("unexpected raw text %q", got.Raw)
	}
}

func TestClient_RefineUpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := newRefineServer(t, http.StatusUnauthorized, strings.Repeat("x", 1500))

	got := newTestClient(srv.URL).Refine(context.Background(), testState(), signal.ModeConservative)
	if got.Kind != signal.RefineFailed {
		t.Fatalf("expected failed result, got %s", got.Kind)
	}
	var upstream *usecase.UpstreamError
	if !errors.As(got.Err, &upstream) {
		t.Fatalf("expected upstream error, got %v", got.Err)
	}
	if upstream.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", upstream.Status)
	}
	if len([]rune(upstream.Body)) > maxErrorBody {
		t.Fatalf("body not truncated: %d runes", len([]rune(upstream.Body)))
	}
}

func TestClient_RefineNotConfigured(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "  ", "COLE_SUA_CHAVE_AQUI"} {
		client := NewClient(ClientConfig{APIKey: key})
		if client.Configured() {
			t.Fatalf("key %q should not count as configured", key)
		}
		got := client.Refine(context.Background(), testState(), signal.ModeAuto)
		if got.Kind != signal.RefineFailed || !errors.Is(got.Err, usecase.ErrNotConfigured) {
			t.Fatalf("key %q: expected not configured failure, got %s %v", key, got.Kind, got.Err)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := buildUserPrompt(testState(), signal.ModeAggressive)
	for _, want := range []string{
		"Modo: AGRESSIVO",
		"- Minuto: 30",
		"- Placar: 1-0",
		"- Escanteios mandante/visitante: N/A/N/A",
		"- Ataques perigosos: N/A",
		"- Quem pressiona: Mandante",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
