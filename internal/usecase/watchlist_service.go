package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/live-corners/internal/domain/live"
	"github.com/riskibarqy/live-corners/internal/platform/cache"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultRefreshInterval = 600 * time.Second
	MinRefreshInterval     = 60 * time.Second
	MaxRefreshInterval     = 3600 * time.Second

	noSnapshotYet = "Sem dados ainda"
)

type SnapshotEntry = live.CacheEntry[live.Snapshot]

type WatchListState struct {
	FixtureIDs     []string `json:"fixture_ids"`
	RefreshSeconds int      `json:"refresh_seconds"`
}

type SnapshotsView struct {
	WatchListState
	Items []SnapshotEntry `json:"items"`
}

type RefreshReport struct {
	At        time.Time
	Forced    bool
	Refreshed int
	Skipped   int
	Failed    int
}

// WatchListService keeps the latest snapshot of every watched fixture.
// Refreshes are serialized: a timer tick and a forced refresh never write
// the same fixture concurrently.
type WatchListService struct {
	provider live.Provider
	interval time.Duration
	logger   *logging.Logger
	now      func() time.Time

	refreshMu sync.Mutex

	listMu sync.RWMutex
	list   live.WatchList

	entries *cache.Store[SnapshotEntry]
}

func NewWatchListService(provider live.Provider, interval time.Duration, logger *logging.Logger) *WatchListService {
	if logger == nil {
		logger = logging.Default()
	}

	s := &WatchListService{
		provider: provider,
		interval: ClampRefreshInterval(interval),
		logger:   logger,
		now:      time.Now,
		list:     live.NewWatchList(nil),
	}
	s.entries = cache.NewStore[SnapshotEntry](0).WithClock(func() time.Time { return s.now() })
	return s
}

// ClampRefreshInterval bounds the timer interval. Zero means the default.
func ClampRefreshInterval(interval time.Duration) time.Duration {
	switch {
	case interval == 0:
		return DefaultRefreshInterval
	case interval < MinRefreshInterval:
		return MinRefreshInterval
	case interval > MaxRefreshInterval:
		return MaxRefreshInterval
	default:
		return interval
	}
}

func (s *WatchListService) Interval() time.Duration {
	return s.interval
}

// SetFixtures replaces the watch list and force-refreshes it before
// returning, so readers never see snapshots of a previous list.
func (s *WatchListService) SetFixtures(ctx context.Context, ids []string) (WatchListState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WatchListService.SetFixtures")
	defer span.End()

	list := live.NewWatchList(ids)

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.listMu.Lock()
	s.list = list
	s.listMu.Unlock()
	s.entries.Retain(ctx, list.IDs())

	report := s.refreshLocked(ctx, true)
	s.logger.InfoContext(ctx, "watch list replaced",
		"fixture_ids", list.IDs(),
		"refreshed", report.Refreshed,
		"failed", report.Failed,
	)

	return s.state(list), nil
}

// Refresh runs one refresh pass over the watch list. Non-forced passes honor
// the economy gate.
func (s *WatchListService) Refresh(ctx context.Context, force bool) (RefreshReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WatchListService.Refresh")
	defer span.End()

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	report := s.refreshLocked(ctx, force)
	s.logger.DebugContext(ctx, "watch list refreshed",
		"forced", force,
		"refreshed", report.Refreshed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *WatchListService) refreshLocked(ctx context.Context, force bool) RefreshReport {
	// Upstream calls outlive a cancelled caller so a dropped HTTP client does
	// not turn every watched fixture into an error entry.
	ctx = context.WithoutCancel(ctx)

	ids := s.currentList().IDs()
	report := RefreshReport{At: s.now().UTC(), Forced: force}
	if len(ids) == 0 {
		return report
	}

	var refreshed, skipped, failed atomic.Int32
	p := pool.New().WithMaxGoroutines(len(ids))
	for _, id := range ids {
		id := id
		p.Go(func() {
			var prev *live.Snapshot
			if entry, ok := s.entries.Get(ctx, id); ok {
				if snap, has := entry.Value(); has {
					prev = &snap
				}
			}
			if !live.ShouldRefresh(force, prev) {
				skipped.Add(1)
				return
			}

			snap, err := s.provider.FetchSnapshot(ctx, id)
			if err != nil {
				failed.Add(1)
				s.entries.Set(ctx, id, live.ErrorEntry[live.Snapshot](s.now().UTC(), err))
				s.logger.WarnContext(ctx, "refresh fixture snapshot failed", "fixture_id", id, "error", err)
				return
			}
			refreshed.Add(1)
			s.entries.Set(ctx, id, live.OKEntry(s.now().UTC(), snap))
		})
	}
	p.Wait()

	report.Refreshed = int(refreshed.Load())
	report.Skipped = int(skipped.Load())
	report.Failed = int(failed.Load())
	return report
}

// Snapshots returns the current entry of every watched fixture, in list order.
func (s *WatchListService) Snapshots(ctx context.Context) SnapshotsView {
	_, span := startUsecaseSpan(ctx, "usecase.WatchListService.Snapshots")
	defer span.End()

	list := s.currentList()
	ids := list.IDs()
	items := make([]SnapshotEntry, 0, len(ids))
	for _, id := range ids {
		entry, ok := s.entries.Get(ctx, id)
		if !ok {
			entry = SnapshotEntry{OK: false, Error: noSnapshotYet}
		}
		items = append(items, entry)
	}

	return SnapshotsView{
		WatchListState: s.state(list),
		Items:          items,
	}
}

func (s *WatchListService) State() WatchListState {
	return s.state(s.currentList())
}

func (s *WatchListService) currentList() live.WatchList {
	s.listMu.RLock()
	defer s.listMu.RUnlock()
	return s.list
}

func (s *WatchListService) state(list live.WatchList) WatchListState {
	return WatchListState{
		FixtureIDs:     list.IDs(),
		RefreshSeconds: int(s.interval / time.Second),
	}
}

func (r RefreshReport) String() string {
	return fmt.Sprintf("refreshed=%d skipped=%d failed=%d forced=%t", r.Refreshed, r.Skipped, r.Failed, r.Forced)
}
