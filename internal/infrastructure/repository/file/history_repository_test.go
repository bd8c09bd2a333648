package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/live-corners/internal/domain/history"
)

func newTestRepository(t *testing.T) (*HistoryRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	return NewHistoryRepository(path, nil), path
}

func TestHistoryRepository_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}

func TestHistoryRepository_CorruptFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo, path := newTestRepository(t)
	for _, content := range []string{"{not json", `{"id":"a"}`} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write history file: %v", err)
		}
		items, err := repo.List(context.Background())
		if err != nil {
			t.Fatalf("list %q: %v", content, err)
		}
		if len(items) != 0 {
			t.Fatalf("list %q: expected empty, got %v", content, items)
		}
	}
}

func TestHistoryRepository_PrependNewestFirstAndTrim(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newTestRepository(t)

	for i := 0; i < 5; i++ {
		count, err := repo.Prepend(ctx, history.Entry{"id": fmt.Sprintf("e%d", i)}, 3)
		if err != nil {
			t.Fatalf("prepend %d: %v", i, err)
		}
		if want := min(i+1, 3); count != want {
			t.Fatalf("prepend %d: count got=%d want=%d", i, count, want)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("unexpected items len got=%d want=3", len(items))
	}
	for i, want := range []string{"e4", "e3", "e2"} {
		if got := items[i].ID(); got != want {
			t.Fatalf("item %d: id got=%q want=%q", i, got, want)
		}
	}
}

func TestHistoryRepository_Patch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newTestRepository(t)
	if _, err := repo.Prepend(ctx, history.Entry{"id": "a", "result": "pending", "stake": 10.0}, 10); err != nil {
		t.Fatalf("prepend: %v", err)
	}

	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	if err := repo.Patch(ctx, "a", history.Entry{"result": "green"}, now); err != nil {
		t.Fatalf("patch: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unexpected items len got=%d want=1", len(items))
	}
	got := items[0]
	if got["result"] != "green" || got["stake"] != 10.0 || got["updated_at"] != now.Format(time.RFC3339Nano) {
		t.Fatalf("unexpected patched entry %v", got)
	}
}

func TestHistoryRepository_PatchUnknownLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, path := newTestRepository(t)
	if _, err := repo.Prepend(ctx, history.Entry{"id": "a"}, 10); err != nil {
		t.Fatalf("prepend: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read before: %v", err)
	}

	err = repo.Patch(ctx, "missing", history.Entry{"result": "red"}, time.Now())
	if !errors.Is(err, history.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("history file changed on failed patch")
	}
}
