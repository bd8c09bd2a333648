package signal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range bounds an input before scoring.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Term is one weighted, capped contribution to confidence.
type Term struct {
	Weight float64 `yaml:"weight"`
	Cap    float64 `yaml:"cap"`
}

func (t Term) Points(v float64) float64 {
	return Range{Min: 0, Max: t.Cap}.Clamp(v * t.Weight)
}

// Rung maps a minimum projected corner count to a suggested line.
type Rung struct {
	MinProjection float64 `yaml:"min_projection"`
	Line          string  `yaml:"line"`
}

type ConservativeRules struct {
	WaitBelow float64           `yaml:"wait_below"`
	SkipBelow float64           `yaml:"skip_below"`
	StepDown  map[string]string `yaml:"step_down"`
}

type AggressiveRules struct {
	EnterAt  float64           `yaml:"enter_at"`
	StepUpAt float64           `yaml:"step_up_at"`
	StepUp   map[string]string `yaml:"step_up"`
}

// Policy holds every coefficient used by Score and Adjust.
type Policy struct {
	Minute        Range `yaml:"minute"`
	CornersTotal  Range `yaml:"corners_total"`
	ShotsTotal    Range `yaml:"shots_total"`
	ShotsOnTarget Range `yaml:"shots_on_target"`
	RedCards      Range `yaml:"red_cards"`

	CornerPace    Term    `yaml:"corner_pace"`
	ShotPace      Term    `yaml:"shot_pace"`
	OnTarget      Term    `yaml:"on_target"`
	PressureBonus float64 `yaml:"pressure_bonus"`
	RedCardMalus  float64 `yaml:"red_card_malus"`

	ProjectionFactor float64 `yaml:"projection_factor"`
	Ladder           []Rung  `yaml:"ladder"`
	FallbackLine     string  `yaml:"fallback_line"`

	EnterAt   float64 `yaml:"enter_at"`
	SkipBelow float64 `yaml:"skip_below"`

	Conservative ConservativeRules `yaml:"conservative"`
	Aggressive   AggressiveRules   `yaml:"aggressive"`
}

func DefaultPolicy() Policy {
	return Policy{
		Minute:        Range{Min: 0, Max: 120},
		CornersTotal:  Range{Min: 0, Max: 50},
		ShotsTotal:    Range{Min: 0, Max: 80},
		ShotsOnTarget: Range{Min: 0, Max: 30},
		RedCards:      Range{Min: 0, Max: 4},

		CornerPace:    Term{Weight: 160, Cap: 55},
		ShotPace:      Term{Weight: 80, Cap: 25},
		OnTarget:      Term{Weight: 3, Cap: 15},
		PressureBonus: 5,
		RedCardMalus:  18,

		ProjectionFactor: 95,
		Ladder: []Rung{
			{MinProjection: 10.5, Line: "Over 9.5"},
			{MinProjection: 9.5, Line: "Over 8.5"},
			{MinProjection: 8.5, Line: "Over 7.5"},
		},
		FallbackLine: "Over 6.5",

		EnterAt:   70,
		SkipBelow: 45,

		Conservative: ConservativeRules{
			WaitBelow: 75,
			SkipBelow: 55,
			StepDown: map[string]string{
				"Over 9.5": "Over 8.5",
				"Over 8.5": "Over 7.5",
			},
		},
		Aggressive: AggressiveRules{
			EnterAt:  62,
			StepUpAt: 82,
			StepUp: map[string]string{
				"Over 7.5": "Over 8.5",
			},
		},
	}
}

var ErrInvalidPolicy = errors.New("invalid signal policy")

// LoadPolicy reads a YAML policy file on top of DefaultPolicy. An empty path
// returns the defaults.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	path = strings.TrimSpace(path)
	if path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return Policy{}, fmt.Errorf("decode policy file: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

func (p Policy) Validate() error {
	for name, r := range map[string]Range{
		"minute":          p.Minute,
		"corners_total":   p.CornersTotal,
		"shots_total":     p.ShotsTotal,
		"shots_on_target": p.ShotsOnTarget,
		"red_cards":       p.RedCards,
	} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("%w: range %s must satisfy 0 <= min <= max", ErrInvalidPolicy, name)
		}
	}
	for name, term := range map[string]Term{
		"corner_pace": p.CornerPace,
		"shot_pace":   p.ShotPace,
		"on_target":   p.OnTarget,
	} {
		if term.Weight < 0 || term.Cap < 0 {
			return fmt.Errorf("%w: term %s must be non-negative", ErrInvalidPolicy, name)
		}
	}
	if p.SkipBelow > p.EnterAt {
		return fmt.Errorf("%w: skip_below must not exceed enter_at", ErrInvalidPolicy)
	}
	if strings.TrimSpace(p.FallbackLine) == "" {
		return fmt.Errorf("%w: fallback_line is required", ErrInvalidPolicy)
	}
	for i := 1; i < len(p.Ladder); i++ {
		if p.Ladder[i].MinProjection >= p.Ladder[i-1].MinProjection {
			return fmt.Errorf("%w: ladder must be ordered highest projection first", ErrInvalidPolicy)
		}
	}
	return nil
}
