package live

import "context"

// Provider fetches live match data from the statistics vendor.
type Provider interface {
	FetchSnapshot(ctx context.Context, fixtureID string) (Snapshot, error)
	ListLive(ctx context.Context) ([]FixtureSummary, error)
}
