package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/live-corners/internal/domain/live"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
	"github.com/riskibarqy/live-corners/internal/platform/resilience"
	"github.com/riskibarqy/live-corners/internal/platform/tracing"
	"github.com/riskibarqy/live-corners/internal/usecase"
)

const (
	defaultBaseURL   = "https://v3.football.api-sports.io"
	providerName     = "API-Football"
	apiKeyHeader     = "x-apisports-key"
	placeholderKey   = "COLE_SUA_CHAVE"
	maxResponseBytes = 6 << 20
)

var errAPIFootballTransient = crerr.New("api-football transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	RatePerMinute  int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the API-Football v3 REST API. Every call is a single
// attempt guarded by a circuit breaker and a request rate limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	limiter    *rate.Limiter
	flight     resilience.SingleFlight[[]byte]
	now        func() time.Time
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
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger.Named("apifootball"),
		breaker:    resilience.NewCircuitBreaker("api-football", cfg.CircuitBreaker).OnStateChange(resilience.LogTransitions(logger)),
		limiter:    limiter,
		now:        time.Now,
	}
}

// Configured reports whether a usable API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != "" && !strings.Contains(c.apiKey, placeholderKey)
}

// FetchSnapshot combines the fixture state and per-team statistics into one
// snapshot. Red cards are not fetched and always report 0.
func (c *Client) FetchSnapshot(ctx context.Context, fixtureID string) (live.Snapshot, error) {
	ctx, span := startSpan(ctx, "apifootball.Client.FetchSnapshot")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return live.Snapshot{}, fmt.Errorf("%w: fixture id is required", usecase.ErrInvalidInput)
	}

	var fixtures fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", url.Values{"id": {fixtureID}}, &fixtures); err != nil {
		return live.Snapshot{}, err
	}
	if len(fixtures.Response) == 0 {
		if msg := providerErrors(fixtures.Errors); msg != "" {
			return live.Snapshot{}, usecase.NewUpstreamError(providerName, http.StatusOK, msg)
		}
		return live.Snapshot{}, usecase.NewUpstreamError(providerName, http.StatusNotFound, "Fixture não encontrado")
	}
	item := fixtures.Response[0]

	var stats statisticsEnvelope
	if err := c.doJSON(ctx, "/fixtures/statistics", url.Values{"fixture": {fixtureID}}, &stats); err != nil {
		return live.Snapshot{}, err
	}
	homeStats := teamStats(stats.Response, 0)
	awayStats := teamStats(stats.Response, 1)

	cornersHome := statValue(homeStats, statCornerKicks)
	cornersAway := statValue(awayStats, statCornerKicks)
	shotsHome := statValue(homeStats, statTotalShots)
	shotsAway := statValue(awayStats, statTotalShots)
	onTargetHome := statValue(homeStats, statShotsOnGoal)
	onTargetAway := statValue(awayStats, statShotsOnGoal)

	return live.Snapshot{
		FixtureID:     fixtureID,
		Match:         nameOr(item.Teams.Home.Name, "Home") + " vs " + nameOr(item.Teams.Away.Name, "Away"),
		Minute:        item.elapsed(),
		Score:         item.score(),
		CornersHome:   cornersHome,
		CornersAway:   cornersAway,
		CornersTotal:  cornersHome + cornersAway,
		ShotsTotal:    shotsHome + shotsAway,
		ShotsOnTarget: onTargetHome + onTargetAway,
		PressureSide:  live.PressureFromShots(float64(shotsHome), float64(shotsAway)),
		RedCards:      0,
		UpdatedAt:     c.now().UTC(),
	}, nil
}

// ListLive returns every fixture currently in play across all leagues.
func (c *Client) ListLive(ctx context.Context) ([]live.FixtureSummary, error) {
	ctx, span := startSpan(ctx, "apifootball.Client.ListLive")
	defer span.End()

	var fixtures fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", url.Values{"live": {"all"}}, &fixtures); err != nil {
		return nil, err
	}

	out := make([]live.FixtureSummary, 0, len(fixtures.Response))
	for _, item := range fixtures.Response {
		out = append(out, live.FixtureSummary{
			FixtureID: fmt.Sprintf("%d", item.Fixture.ID),
			League:    item.League.Name,
			Country:   item.League.Country,
			Minute:    item.elapsed(),
			Status:    item.Fixture.Status.Short,
			Home:      item.Teams.Home.Name,
			Away:      item.Teams.Away.Name,
			Score:     item.score(),
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if !c.Configured() {
		return fmt.Errorf("%w: API_FOOTBALL_KEY não configurada", usecase.ErrNotConfigured)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The request is shared by every caller joined on fullURL, so one caller
	// going away must not fail it for the rest or count against the breaker.
	shared := context.WithoutCancel(ctx)
	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		var body []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			body, reqErr = c.executeRequest(shared, fullURL)
			return reqErr
		}, isTransient)
		return body, execErr
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return fmt.Errorf("%w: live data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		tracing.RecordError(trace.SpanFromContext(ctx), err)
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return usecase.NewUpstreamError(providerName, 0, "decode payload: "+err.Error())
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, crerr.Wrap(err, "wait for api-football rate limiter")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build api-football request")
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		sendErr := usecase.NewUpstreamError(providerName, 0, sanitizeKey(err.Error(), c.apiKey))
		c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", sendErr)
		return nil, crerr.Mark(sendErr, errAPIFootballTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(usecase.NewUpstreamError(providerName, resp.StatusCode, "read body: "+err.Error()), errAPIFootballTransient)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := usecase.NewUpstreamError(providerName, resp.StatusCode, strings.TrimSpace(string(raw)))
		c.logger.WarnContext(ctx, "api-football returned non-success status", "url", fullURL, "status", resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			return nil, crerr.Mark(statusErr, errAPIFootballTransient)
		}
		return nil, statusErr
	}

	return raw, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errAPIFootballTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeKey(value, key string) string {
	if key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}
