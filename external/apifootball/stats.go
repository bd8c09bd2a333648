package apifootball

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	statCornerKicks = "Corner Kicks"
	statTotalShots  = "Total Shots"
	statShotsOnGoal = "Shots on Goal"
)

var nonNumericRegex = regexp.MustCompile(`[^\d\-]`)

// statValue looks up a statistic by case-insensitive name. Missing, null and
// unparsable values resolve to 0.
func statValue(stats []statisticItem, name string) int {
	for _, item := range stats {
		if !strings.EqualFold(strings.TrimSpace(item.Type), name) {
			continue
		}
		return numericValue(item.Value)
	}
	return 0
}

func numericValue(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case string:
		cleaned := nonNumericRegex.ReplaceAllString(v, "")
		n, err := strconv.Atoi(cleaned)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func teamStats(teams []teamStatistics, idx int) []statisticItem {
	if idx < 0 || idx >= len(teams) {
		return nil
	}
	return teams[idx].Statistics
}
