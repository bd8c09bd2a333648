package history

import (
	"context"
	"errors"
	"time"
)

// DefaultLimit caps how many entries are kept, newest first.
const DefaultLimit = 500

var ErrEntryNotFound = errors.New("history entry not found")

// Entry is an arbitrary JSON object saved by the front end. The "id" field,
// when it is a string, identifies the entry for patching.
type Entry map[string]any

func (e Entry) ID() string {
	if e == nil {
		return ""
	}
	id, _ := e["id"].(string)
	return id
}

// Merge returns a copy of e with patch applied on top and updated_at stamped.
func (e Entry) Merge(patch Entry, now time.Time) Entry {
	out := make(Entry, len(e)+len(patch)+1)
	for k, v := range e {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	out["updated_at"] = now.UTC().Format(time.RFC3339Nano)
	return out
}

// Prepend puts entry in front and drops the oldest items beyond limit.
func Prepend(items []Entry, entry Entry, limit int) []Entry {
	out := make([]Entry, 0, len(items)+1)
	out = append(out, entry)
	out = append(out, items...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	// Prepend stores entry as the newest item, trims to limit and returns the
	// resulting number of items.
	Prepend(ctx context.Context, entry Entry, limit int) (int, error)
	// Patch merges fields into the entry with the given id. It returns
	// ErrEntryNotFound without writing anything when no entry matches.
	Patch(ctx context.Context, id string, patch Entry, now time.Time) error
}
