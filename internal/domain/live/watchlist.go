package live

import "strings"

// MaxWatched is the maximum number of fixtures refreshed on the timer.
const MaxWatched = 3

// Economy gate bounds, in match minutes.
const (
	EconomyGateMinMinute = 12
	EconomyGateMaxMinute = 85
)

// WatchList is an ordered set of fixture ids, at most MaxWatched long.
type WatchList struct {
	ids []string
}

// NewWatchList trims blanks, drops duplicates keeping first occurrence and
// truncates to MaxWatched.
func NewWatchList(ids []string) WatchList {
	out := make([]string, 0, MaxWatched)
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == MaxWatched {
			break
		}
	}
	return WatchList{ids: out}
}

// IDs returns a copy of the watched ids.
func (w WatchList) IDs() []string {
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

func (w WatchList) Len() int {
	return len(w.ids)
}

func (w WatchList) Contains(id string) bool {
	for _, item := range w.ids {
		if item == id {
			return true
		}
	}
	return false
}

// ShouldRefresh applies the economy gate: forced refreshes always run, a
// fixture without a snapshot always runs, otherwise only while the last
// known minute lies inside the useful window.
func ShouldRefresh(force bool, prev *Snapshot) bool {
	if force || prev == nil {
		return true
	}
	return prev.Minute >= EconomyGateMinMinute && prev.Minute <= EconomyGateMaxMinute
}
