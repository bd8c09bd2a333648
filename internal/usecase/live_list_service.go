package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/live-corners/internal/domain/live"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
	"github.com/riskibarqy/live-corners/internal/platform/resilience"
)

const DefaultLiveListTTL = 60 * time.Second

type LiveListEntry = live.CacheEntry[[]live.FixtureSummary]

type LiveListResult struct {
	Entry  LiveListEntry
	Cached bool
}

// LiveListService caches the all-leagues live list for every viewer. Only
// successful lists are served from cache.
type LiveListService struct {
	provider live.Provider
	ttl      time.Duration
	logger   *logging.Logger
	now      func() time.Time

	mu     sync.RWMutex
	last   LiveListEntry
	flight resilience.SingleFlight[LiveListEntry]
}

func NewLiveListService(provider live.Provider, ttl time.Duration, logger *logging.Logger) *LiveListService {
	if ttl <= 0 {
		ttl = DefaultLiveListTTL
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LiveListService{
		provider: provider,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *LiveListService) List(ctx context.Context) LiveListResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveListService.List")
	defer span.End()

	if entry, ok := s.fresh(); ok {
		return LiveListResult{Entry: entry, Cached: true}
	}

	entry, _, _ := s.flight.Do("live", func() (LiveListEntry, error) {
		if cached, ok := s.fresh(); ok {
			return cached, nil
		}

		items, err := s.provider.ListLive(ctx)
		var next LiveListEntry
		if err != nil {
			s.logger.WarnContext(ctx, "list live fixtures failed", "error", err)
			next = live.ErrorEntry[[]live.FixtureSummary](s.now().UTC(), err)
		} else {
			if items == nil {
				items = []live.FixtureSummary{}
			}
			next = live.OKEntry(s.now().UTC(), items)
		}

		s.mu.Lock()
		s.last = next
		s.mu.Unlock()
		return next, nil
	})

	return LiveListResult{Entry: entry, Cached: false}
}

func (s *LiveListService) fresh() (LiveListEntry, bool) {
	s.mu.RLock()
	entry := s.last
	s.mu.RUnlock()

	if !entry.OK || entry.Age(s.now()) >= s.ttl {
		return LiveListEntry{}, false
	}
	return entry, true
}
