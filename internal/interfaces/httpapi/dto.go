package httpapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/live-corners/internal/domain/history"
	"github.com/riskibarqy/live-corners/internal/domain/live"
	"github.com/riskibarqy/live-corners/internal/domain/signal"
	"github.com/riskibarqy/live-corners/internal/usecase"
)

type okResponse struct {
	OK bool `json:"ok"`
}

type countResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

type historyListResponse struct {
	Items []history.Entry `json:"items"`
}

type liveListResponse struct {
	OK        bool                  `json:"ok"`
	Cached    bool                  `json:"cached"`
	Items     []live.FixtureSummary `json:"items"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type failureResponse struct {
	OK     bool   `json:"ok"`
	Cached bool   `json:"cached,omitempty"`
	Error  string `json:"error"`
}

type setFixturesResponse struct {
	OK bool `json:"ok"`
	usecase.WatchListState
}

type forceRefreshResponse struct {
	OK bool      `json:"ok"`
	At time.Time `json:"at"`
}

type evaluationResponse struct {
	OK        bool                  `json:"ok"`
	Cached    bool                  `json:"cached"`
	Snapshot  live.Snapshot         `json:"snapshot"`
	Heuristic signal.Recommendation `json:"heuristic"`
}

// setFixturesRequest accepts ids as strings or numbers. Anything that is not
// an array is treated as an empty list.
type setFixturesRequest struct {
	FixtureIDs any `json:"fixture_ids"`
}

func (r setFixturesRequest) ids() []string {
	raw, ok := r.FixtureIDs.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(v))
		}
	}
	return out
}

type analyzeRequest struct {
	signal.GameState
	Mode signal.Text `json:"mode" validate:"omitempty,max=32"`
}

func (r analyzeRequest) input() usecase.AnalyzeInput {
	state := r.GameState
	state.Notes = signal.Text(strings.TrimSpace(state.Notes.String()))
	return usecase.AnalyzeInput{
		State: state,
		Mode:  signal.ParseMode(r.Mode.String()),
	}
}
