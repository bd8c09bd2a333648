package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/live-corners/internal/domain/history"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

// HistoryRepository keeps the history as one pretty-printed JSON array on
// disk. A missing, unreadable or malformed file reads as an empty history.
type HistoryRepository struct {
	path   string
	logger *logging.Logger

	mu sync.Mutex
}

func NewHistoryRepository(path string, logger *logging.Logger) *HistoryRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &HistoryRepository{
		path:   path,
		logger: logger,
	}
}

func (r *HistoryRepository) List(ctx context.Context) ([]history.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read(ctx), nil
}

func (r *HistoryRepository) Prepend(ctx context.Context, entry history.Entry, limit int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := history.Prepend(r.read(ctx), entry, limit)
	if err := r.write(items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *HistoryRepository) Patch(ctx context.Context, id string, patch history.Entry, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.read(ctx)
	for i, item := range items {
		if item.ID() != id {
			continue
		}
		items[i] = item.Merge(patch, now)
		return r.write(items)
	}
	return history.ErrEntryNotFound
}

func (r *HistoryRepository) read(ctx context.Context) []history.Entry {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.WarnContext(ctx, "read history file failed, treating as empty", "path", r.path, "error", err)
		}
		return []history.Entry{}
	}

	// Decode loosely so one non-object element does not discard the rest.
	var decoded []any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		r.logger.WarnContext(ctx, "history file is not a json array, treating as empty", "path", r.path, "error", err)
		return []history.Entry{}
	}

	items := make([]history.Entry, 0, len(decoded))
	for _, item := range decoded {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, history.Entry(obj))
	}
	return items
}

// write replaces the file atomically through a temp file in the same dir.
func (r *HistoryRepository) write(items []history.Entry) error {
	raw, err := sonic.ConfigStd.MarshalIndent(items, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "marshal history")
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create history dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return crerr.Wrap(err, "create history temp file")
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return crerr.Wrap(err, "write history temp file")
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrap(err, "close history temp file")
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace history file %s: %w", r.path, err)
	}
	return nil
}
