package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/live-corners/internal/domain/history"
	"github.com/riskibarqy/live-corners/internal/platform/id"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

type HistoryService struct {
	repo   history.Repository
	ids    id.Generator
	limit  int
	logger *logging.Logger
	now    func() time.Time

	// writes are read-modify-write on the file store
	mu sync.Mutex
}

func NewHistoryService(repo history.Repository, ids id.Generator, limit int, logger *logging.Logger) *HistoryService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if limit <= 0 {
		limit = history.DefaultLimit
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HistoryService{
		repo:   repo,
		ids:    ids,
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
}

func (s *HistoryService) List(ctx context.Context) ([]history.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if items == nil {
		items = []history.Entry{}
	}
	return items, nil
}

// Append stores entry as the newest item and returns the stored count.
// Entries without a string id get a generated one so they can be patched.
func (s *HistoryService) Append(ctx context.Context, entry history.Entry) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.Append")
	defer span.End()

	if entry == nil {
		return 0, fmt.Errorf("%w: invalid body", ErrInvalidInput)
	}
	if _, present := entry["id"]; !present {
		generated, err := s.ids.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate history id: %w", err)
		}
		entry["id"] = generated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.repo.Prepend(ctx, entry, s.limit)
	if err != nil {
		return 0, fmt.Errorf("prepend history: %w", err)
	}
	return count, nil
}

func (s *HistoryService) Patch(ctx context.Context, entryID string, patch history.Entry) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.Patch")
	defer span.End()

	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if patch == nil {
		patch = history.Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Patch(ctx, entryID, patch, s.now().UTC())
	if errors.Is(err, history.ErrEntryNotFound) {
		return fmt.Errorf("%w: history entry %s", ErrNotFound, entryID)
	}
	if err != nil {
		return fmt.Errorf("patch history: %w", err)
	}
	s.logger.DebugContext(ctx, "history entry patched", "id", entryID)
	return nil
}
