package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/live-corners/internal/domain/signal"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
	"github.com/riskibarqy/live-corners/internal/platform/resilience"
	"github.com/riskibarqy/live-corners/internal/platform/tracing"
	"github.com/riskibarqy/live-corners/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultModel     = "gpt-5.2"
	providerName     = "OpenAI"
	placeholderKey   = "COLE_SUA_CHAVE"
	maxErrorBody     = 1000
	maxResponseBytes = 4 << 20
)

var errOpenAITransient = crerr.New("openai transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client refines recommendations through the Responses API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 60 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		logger:     logger.Named("openai"),
		breaker:    resilience.NewCircuitBreaker("openai", cfg.CircuitBreaker).OnStateChange(resilience.LogTransitions(logger)),
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != "" && !strings.Contains(c.apiKey, placeholderKey)
}

// Refine never returns an error: failures come back as signal.Failed and
// unparsable answers as signal.RawText.
func (c *Client) Refine(ctx context.Context, state signal.GameState, mode signal.Mode) signal.RefineResult {
	ctx, span := startSpan(ctx, "openai.Client.Refine")
	defer span.End()

	if !c.Configured() {
		return signal.Failed(fmt.Errorf("%w: OPENAI_API_KEY", usecase.ErrNotConfigured))
	}

	payload := responsesRequest{
		Model: c.model,
		Input: []inputMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(state, mode)},
		},
		Text: textOptions{Format: textFormat{Type: "text"}},
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var callErr error
		raw, callErr = c.post(ctx, "/responses", payload)
		return callErr
	}, isTransient)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		return signal.Failed(fmt.Errorf("%w: reasoning endpoint is temporarily unavailable", usecase.ErrDependencyUnavailable))
	}
	if err != nil {
		tracing.RecordError(span, err)
		c.logger.WarnContext(ctx, "openai refine failed", "model", c.model, "error", err)
		return signal.Failed(err)
	}

	var envelope responsesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return signal.Failed(&usecase.UpstreamError{Provider: providerName, Body: usecase.Truncate("decode response: "+err.Error(), maxErrorBody)})
	}

	text := envelope.outputText()
	if rec, ok := parseRecommendation(text); ok {
		return signal.Parsed(rec)
	}
	c.logger.InfoContext(ctx, "openai answer is not a json recommendation", "model", c.model, "length", len(text))
	return signal.RawText(text)
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return nil, crerr.Wrap(err, "marshal openai request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return nil, crerr.Wrap(err, "create openai request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := strings.ReplaceAll(err.Error(), c.apiKey, "REDACTED")
		return nil, crerr.Mark(&usecase.UpstreamError{Provider: providerName, Body: msg}, errOpenAITransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read openai response"), errOpenAITransient)
	}
	if resp.StatusCode/100 != 2 {
		statusErr := &usecase.UpstreamError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Body:     usecase.Truncate(strings.TrimSpace(string(raw)), maxErrorBody),
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, crerr.Mark(statusErr, errOpenAITransient)
		}
		return nil, statusErr
	}
	return raw, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errOpenAITransient)
}
