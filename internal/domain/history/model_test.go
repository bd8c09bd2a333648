package history

import (
	"testing"
	"time"
)

func TestPrepend_TrimsOldest(t *testing.T) {
	t.Parallel()

	items := []Entry{{"id": "b"}, {"id": "a"}}
	got := Prepend(items, Entry{"id": "c"}, 2)

	if len(got) != 2 {
		t.Fatalf("unexpected len got=%d want=2", len(got))
	}
	if got[0].ID() != "c" || got[1].ID() != "b" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestEntry_MergeStampsUpdatedAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	base := Entry{"id": "x", "result": "pending", "stake": 10.0}
	got := base.Merge(Entry{"result": "green"}, now)

	if got["result"] != "green" || got["stake"] != 10.0 {
		t.Fatalf("unexpected merge result: %v", got)
	}
	if got["updated_at"] != "2026-03-01T18:30:00Z" {
		t.Fatalf("unexpected updated_at got=%v", got["updated_at"])
	}
	if base["result"] != "pending" {
		t.Fatalf("merge must not mutate the original entry")
	}
}

func TestEntry_IDRequiresString(t *testing.T) {
	t.Parallel()

	if got := (Entry{"id": 12.0}).ID(); got != "" {
		t.Fatalf("numeric id must not match, got=%q", got)
	}
	if got := (Entry{"id": "abc"}).ID(); got != "abc" {
		t.Fatalf("unexpected id got=%q", got)
	}
}
