package signal

import "strings"

// Adjust applies mode adjustment with the default policy.
func Adjust(rec Recommendation, mode Mode) Recommendation {
	return DefaultPolicy().Adjust(rec, mode)
}

// Adjust makes a recommendation more or less selective. The result records
// the mode it was adjusted for and re-adjusting with that same mode returns
// it unchanged. Adjusting for a different mode is not commutative.
func (p Policy) Adjust(rec Recommendation, mode Mode) Recommendation {
	if mode == ModeAuto || mode == "" || rec.AppliedMode == mode {
		return rec
	}

	out := rec
	out.Checklist = append([]string(nil), rec.Checklist...)
	confidence := float64(rec.Confidence)
	line := strings.TrimSpace(rec.SuggestedLine)

	switch mode {
	case ModeConservative:
		rules := p.Conservative
		if confidence < rules.WaitBelow {
			out.Action = ActionWait
		}
		if confidence < rules.SkipBelow {
			out.Action = ActionSkip
		}
		if lower, ok := rules.StepDown[line]; ok {
			out.SuggestedLine = lower
		}
	case ModeAggressive:
		rules := p.Aggressive
		if confidence >= rules.EnterAt {
			out.Action = ActionEnter
		}
		if confidence >= rules.StepUpAt {
			if higher, ok := rules.StepUp[line]; ok {
				out.SuggestedLine = higher
			}
		}
	default:
		return rec
	}

	out.AppliedMode = mode
	return out
}

// Rung returns the index of line on the ladder, 0 being the highest. The
// fallback line ranks last and unknown lines return -1.
func (p Policy) Rung(line string) int {
	line = strings.TrimSpace(line)
	for i, rung := range p.Ladder {
		if rung.Line == line {
			return i
		}
	}
	if line == p.FallbackLine {
		return len(p.Ladder)
	}
	return -1
}
