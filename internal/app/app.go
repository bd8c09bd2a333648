package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/live-corners/external/apifootball"
	"github.com/riskibarqy/live-corners/external/openai"
	"github.com/riskibarqy/live-corners/internal/config"
	"github.com/riskibarqy/live-corners/internal/domain/history"
	"github.com/riskibarqy/live-corners/internal/domain/signal"
	"github.com/riskibarqy/live-corners/internal/infrastructure/repository/file"
	"github.com/riskibarqy/live-corners/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/live-corners/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/live-corners/internal/platform/id"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
	"github.com/riskibarqy/live-corners/internal/usecase"
)

// App is the assembled service: the HTTP server plus the background refresh
// scheduler and whatever must be closed on shutdown.
type App struct {
	Server    *http.Server
	Scheduler *usecase.RefreshScheduler

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	policy, err := signal.LoadPolicy(cfg.SignalPolicyFile)
	if err != nil {
		return nil, fmt.Errorf("load signal policy: %w", err)
	}

	a := &App{}

	historyRepo, err := a.historyRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	footballClient := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:        cfg.APIFootballBaseURL,
		APIKey:         cfg.APIFootballKey,
		Timeout:        cfg.APIFootballTimeout,
		RatePerMinute:  cfg.APIFootballRatePerMinute,
		Logger:         logger,
		CircuitBreaker: cfg.APIFootballCircuit,
	})
	if !footballClient.Configured() {
		logger.Warn("API_FOOTBALL_KEY is not set, live endpoints will report errors")
	}

	var refiner signal.Refiner
	openaiClient := openai.NewClient(openai.ClientConfig{
		BaseURL:        cfg.OpenAIBaseURL,
		APIKey:         cfg.OpenAIKey,
		Model:          cfg.OpenAIModel,
		Timeout:        cfg.OpenAITimeout,
		Logger:         logger,
		CircuitBreaker: cfg.OpenAICircuit,
	})
	if openaiClient.Configured() {
		refiner = openaiClient
	} else {
		logger.Info("OPENAI_API_KEY is not set, analysis runs heuristic only")
	}

	watchList := usecase.NewWatchListService(footballClient, cfg.LiveRefreshInterval, logger)
	scheduler, err := usecase.NewRefreshScheduler(watchList, watchList.Interval(), logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create refresh scheduler: %w", err)
	}
	a.Scheduler = scheduler

	handler := httpapi.NewHandler(
		watchList,
		usecase.NewEvaluationService(footballClient, policy, cfg.EvalCacheTTL, logger),
		usecase.NewLiveListService(footballClient, cfg.LiveListCacheTTL, logger),
		usecase.NewAdvisoryService(refiner, policy, logger),
		usecase.NewHistoryService(historyRepo, idgen.NewUUIDGenerator(), cfg.HistoryMaxItems, logger),
		logger,
	)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:          cfg.StaticDir,
	}, logger)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

// historyRepository picks postgres when DB_URL is set and the JSON file
// otherwise.
func (a *App) historyRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (history.Repository, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("history stored in file", "path", cfg.HistoryFile)
		return file.NewHistoryRepository(cfg.HistoryFile, logger), nil
	}

	db, err := openDB(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)
	source := parseDataSource(cfg.DBURL)
	logger.Info("history stored in postgres", "db_name", source.name(), "db_host", source.host())
	return postgres.NewHistoryRepository(db), nil
}

// Close releases resources opened by New.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
