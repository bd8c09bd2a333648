package signal

import (
	"math"

	"github.com/riskibarqy/live-corners/internal/domain/live"
)

// Input is the raw game state fed to the scorer.
type Input struct {
	Minute        float64
	CornersTotal  float64
	ShotsTotal    float64
	ShotsOnTarget float64
	RedCards      float64
	PressureSide  live.PressureSide
}

func InputFromSnapshot(s live.Snapshot) Input {
	return Input{
		Minute:        float64(s.Minute),
		CornersTotal:  float64(s.CornersTotal),
		ShotsTotal:    float64(s.ShotsTotal),
		ShotsOnTarget: float64(s.ShotsOnTarget),
		RedCards:      float64(s.RedCards),
		PressureSide:  s.PressureSide,
	}
}

// Score computes the heuristic recommendation with the default policy.
func Score(in Input) Recommendation {
	return DefaultPolicy().Score(in)
}

// Score is deterministic and has no side effects.
func (p Policy) Score(in Input) Recommendation {
	minute := p.Minute.Clamp(finite(in.Minute))
	corners := p.CornersTotal.Clamp(finite(in.CornersTotal))
	shots := p.ShotsTotal.Clamp(finite(in.ShotsTotal))
	onTarget := p.ShotsOnTarget.Clamp(finite(in.ShotsOnTarget))
	reds := p.RedCards.Clamp(finite(in.RedCards))

	var cornerPace, shotPace float64
	if minute > 0 {
		cornerPace = corners / minute
		shotPace = shots / minute
	}

	raw := p.CornerPace.Points(cornerPace) +
		p.ShotPace.Points(shotPace) +
		p.OnTarget.Points(onTarget)
	if in.PressureSide.Pressuring() {
		raw += p.PressureBonus
	}
	if reds > 0 {
		raw -= p.RedCardMalus
	}
	confidence := int(Range{Min: 0, Max: 100}.Clamp(math.Round(raw)))

	justification := justificationNormal
	if reds > 0 {
		justification = justificationRedCard
	}

	return Recommendation{
		Action:             p.ActionFor(float64(confidence)),
		Confidence:         confidence,
		SuggestedLine:      p.LineFor(cornerPace * p.ProjectionFactor),
		Justification:      justification,
		Checklist:          checklist(),
		CashoutPlan:        cashoutPlan,
		BankrollManagement: bankrollManagement,
	}
}

// ActionFor maps a confidence score to an action.
func (p Policy) ActionFor(confidence float64) Action {
	switch {
	case confidence >= p.EnterAt:
		return ActionEnter
	case confidence < p.SkipBelow:
		return ActionSkip
	default:
		return ActionWait
	}
}

// LineFor walks the ladder highest-first and returns the first line whose
// threshold the projection reaches.
func (p Policy) LineFor(projected float64) string {
	for _, rung := range p.Ladder {
		if projected >= rung.MinProjection {
			return rung.Line
		}
	}
	return p.FallbackLine
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
