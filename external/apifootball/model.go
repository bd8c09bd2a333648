package apifootball

import (
	"fmt"
	"strings"
)

type fixturesEnvelope struct {
	Errors   any           `json:"errors"`
	Response []fixtureItem `json:"response"`
}

type statisticsEnvelope struct {
	Errors   any              `json:"errors"`
	Response []teamStatistics `json:"response"`
}

type fixtureItem struct {
	Fixture fixtureInfo `json:"fixture"`
	League  leagueInfo  `json:"league"`
	Teams   teamsInfo   `json:"teams"`
	Goals   goalsInfo   `json:"goals"`
}

type fixtureInfo struct {
	ID     int64         `json:"id"`
	Status fixtureStatus `json:"status"`
}

type fixtureStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type leagueInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type teamsInfo struct {
	Home teamRef `json:"home"`
	Away teamRef `json:"away"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type goalsInfo struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type teamStatistics struct {
	Team       teamRef         `json:"team"`
	Statistics []statisticItem `json:"statistics"`
}

type statisticItem struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func (f fixtureItem) elapsed() int {
	if f.Fixture.Status.Elapsed == nil {
		return 0
	}
	return *f.Fixture.Status.Elapsed
}

func (f fixtureItem) score() string {
	return fmt.Sprintf("%d-%d", intOrZero(f.Goals.Home), intOrZero(f.Goals.Away))
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

// providerErrors flattens the "errors" field, which the provider sends as an
// empty array when there are none and as an object or array otherwise.
func providerErrors(raw any) string {
	switch v := raw.(type) {
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		parts := make([]string, 0, len(v))
		for key, value := range v {
			parts = append(parts, fmt.Sprintf("%s: %v", key, value))
		}
		return strings.Join(parts, "; ")
	case []any:
		if len(v) == 0 {
			return ""
		}
		parts := make([]string, 0, len(v))
		for _, value := range v {
			parts = append(parts, fmt.Sprint(value))
		}
		return strings.Join(parts, "; ")
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}
