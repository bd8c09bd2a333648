package live

import (
	"bytes"
	"strconv"
	"time"
)

// PressureSide names the team dominating shot volume.
type PressureSide string

const (
	PressureHome     PressureSide = "Mandante"
	PressureAway     PressureSide = "Visitante"
	PressureBalanced PressureSide = "Equilibrado"
)

// Pressuring reports whether a specific team is on top.
func (p PressureSide) Pressuring() bool {
	return p == PressureHome || p == PressureAway
}

// UnmarshalJSON accepts any JSON value. Anything but a string names no side.
func (p *PressureSide) UnmarshalJSON(data []byte) error {
	*p = ""
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] != '"' {
		return nil
	}
	if s, err := strconv.Unquote(string(raw)); err == nil {
		*p = PressureSide(s)
	}
	return nil
}

// ShotMargin is how many more shots one side needs before it counts as pressuring.
const ShotMargin = 2

// PressureFromShots derives the pressure side from total shots per team.
func PressureFromShots(home, away float64) PressureSide {
	switch {
	case home > away+ShotMargin:
		return PressureHome
	case away > home+ShotMargin:
		return PressureAway
	default:
		return PressureBalanced
	}
}

// Snapshot is the normalized point-in-time state of one fixture.
type Snapshot struct {
	FixtureID     string       `json:"fixture_id"`
	Match         string       `json:"match"`
	Minute        int          `json:"minute"`
	Score         string       `json:"score"`
	CornersHome   int          `json:"corners_home"`
	CornersAway   int          `json:"corners_away"`
	CornersTotal  int          `json:"corners_total"`
	ShotsTotal    int          `json:"shots_total"`
	ShotsOnTarget int          `json:"shots_on_target"`
	PressureSide  PressureSide `json:"pressure_side"`
	RedCards      int          `json:"red_cards"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// FixtureSummary is one row of the all-leagues live list.
type FixtureSummary struct {
	FixtureID string `json:"fixture_id"`
	League    string `json:"league"`
	Country   string `json:"country"`
	Minute    int    `json:"minute"`
	Status    string `json:"status"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	Score     string `json:"score"`
}
