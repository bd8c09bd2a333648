package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/live-corners/internal/domain/live"
	"github.com/riskibarqy/live-corners/internal/domain/signal"
	"github.com/riskibarqy/live-corners/internal/platform/cache"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

const DefaultEvaluationTTL = 120 * time.Second

type Evaluation struct {
	Snapshot  live.Snapshot         `json:"snapshot"`
	Heuristic signal.Recommendation `json:"heuristic"`
}

type EvaluationEntry = live.CacheEntry[Evaluation]

type EvaluationResult struct {
	Entry  EvaluationEntry
	Cached bool
}

// EvaluationService scores one fixture on demand and caches the outcome,
// failures included, for the TTL.
type EvaluationService struct {
	provider live.Provider
	policy   signal.Policy
	logger   *logging.Logger
	now      func() time.Time
	entries  *cache.Store[EvaluationEntry]
}

func NewEvaluationService(provider live.Provider, policy signal.Policy, ttl time.Duration, logger *logging.Logger) *EvaluationService {
	if ttl <= 0 {
		ttl = DefaultEvaluationTTL
	}
	if logger == nil {
		logger = logging.Default()
	}

	s := &EvaluationService{
		provider: provider,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
	s.entries = cache.NewStore[EvaluationEntry](ttl).WithClock(func() time.Time { return s.now() })
	return s
}

func (s *EvaluationService) Evaluate(ctx context.Context, fixtureID string) (EvaluationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.Evaluate")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return EvaluationResult{}, fmt.Errorf("%w: fixtureId required", ErrInvalidInput)
	}

	// The entry is shared with every later viewer of the fixture; a caller that
	// disconnects mid-fetch must not leave a cancellation behind for the TTL.
	entry, cached, err := s.entries.GetOrLoad(context.WithoutCancel(ctx), fixtureID, func(ctx context.Context) (EvaluationEntry, error) {
		snap, err := s.provider.FetchSnapshot(ctx, fixtureID)
		if err != nil {
			s.logger.WarnContext(ctx, "evaluate fixture failed", "fixture_id", fixtureID, "error", err)
			return live.ErrorEntry[Evaluation](s.now().UTC(), err), nil
		}
		return live.OKEntry(s.now().UTC(), Evaluation{
			Snapshot:  snap,
			Heuristic: s.policy.Score(signal.InputFromSnapshot(snap)),
		}), nil
	})
	if err != nil {
		return EvaluationResult{}, err
	}

	return EvaluationResult{Entry: entry, Cached: cached}, nil
}
