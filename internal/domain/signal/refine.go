package signal

import (
	"context"

	"github.com/riskibarqy/live-corners/internal/domain/live"
)

// GameState is the raw game description submitted for analysis. No field
// fails decoding: numbers tolerate strings and garbage, text fields accept
// any scalar.
type GameState struct {
	Minute           Number            `json:"minute"`
	Score            Text              `json:"score"`
	CornersTotal     Number            `json:"corners_total"`
	CornersHome      Number            `json:"corners_home"`
	CornersAway      Number            `json:"corners_away"`
	ShotsTotal       Number            `json:"shots_total"`
	ShotsOnTarget    Number            `json:"shots_on_target"`
	DangerousAttacks Number            `json:"dangerous_attacks"`
	PressureSide     live.PressureSide `json:"pressure_side"`
	RedCards         Number            `json:"red_cards"`
	Notes            Text              `json:"notes"`
}

func (g GameState) Input() Input {
	return Input{
		Minute:        g.Minute.Or(0),
		CornersTotal:  g.CornersTotal.Or(0),
		ShotsTotal:    g.ShotsTotal.Or(0),
		ShotsOnTarget: g.ShotsOnTarget.Or(0),
		RedCards:      g.RedCards.Or(0),
		PressureSide:  g.PressureSide,
	}
}

// RefineKind tags the outcome of an external refinement.
type RefineKind int

const (
	RefineFailed RefineKind = iota
	RefineParsed
	RefineRawText
)

func (k RefineKind) String() string {
	switch k {
	case RefineParsed:
		return "parsed"
	case RefineRawText:
		return "raw_text"
	default:
		return "failed"
	}
}

// RefineResult is exactly one of Parsed, RawText or Failed.
type RefineResult struct {
	Kind           RefineKind
	Recommendation Recommendation
	Raw            string
	Err            error
}

func Parsed(rec Recommendation) RefineResult {
	return RefineResult{Kind: RefineParsed, Recommendation: rec}
}

func RawText(text string) RefineResult {
	return RefineResult{Kind: RefineRawText, Raw: text}
}

func Failed(err error) RefineResult {
	return RefineResult{Kind: RefineFailed, Err: err}
}

// Refiner asks an external reasoning service to refine a game state.
type Refiner interface {
	Refine(ctx context.Context, state GameState, mode Mode) RefineResult
}
