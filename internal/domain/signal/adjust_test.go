package signal

import (
	"reflect"
	"testing"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	cases := map[string]Mode{
		"conservador":    ModeConservative,
		" Conservative ": ModeConservative,
		"AGRESSIVO":      ModeAggressive,
		"aggressive":     ModeAggressive,
		"":               ModeAuto,
		"turbo":          ModeAuto,
	}
	for raw, want := range cases {
		if got := ParseMode(raw); got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestAdjust_Conservative(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in         Recommendation
		wantAction Action
		wantLine   string
	}{
		{in: Recommendation{Action: ActionEnter, Confidence: 93, SuggestedLine: "Over 9.5"}, wantAction: ActionEnter, wantLine: "Over 8.5"},
		{in: Recommendation{Action: ActionEnter, Confidence: 60, SuggestedLine: "Over 8.5"}, wantAction: ActionWait, wantLine: "Over 7.5"},
		{in: Recommendation{Action: ActionWait, Confidence: 50, SuggestedLine: "Over 6.5"}, wantAction: ActionSkip, wantLine: "Over 6.5"},
	}
	for _, tc := range cases {
		got := Adjust(tc.in, ModeConservative)
		if got.Action != tc.wantAction || got.SuggestedLine != tc.wantLine || got.AppliedMode != ModeConservative {
			t.Fatalf("Adjust(%+v) = %+v, want action=%s line=%q", tc.in, got, tc.wantAction, tc.wantLine)
		}
	}
}

func TestAdjust_Aggressive(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in         Recommendation
		wantAction Action
		wantLine   string
	}{
		{in: Recommendation{Action: ActionWait, Confidence: 65, SuggestedLine: "Over 7.5"}, wantAction: ActionEnter, wantLine: "Over 7.5"},
		{in: Recommendation{Action: ActionEnter, Confidence: 85, SuggestedLine: "Over 7.5"}, wantAction: ActionEnter, wantLine: "Over 8.5"},
		{in: Recommendation{Action: ActionSkip, Confidence: 40, SuggestedLine: "Over 6.5"}, wantAction: ActionSkip, wantLine: "Over 6.5"},
	}
	for _, tc := range cases {
		got := Adjust(tc.in, ModeAggressive)
		if got.Action != tc.wantAction || got.SuggestedLine != tc.wantLine {
			t.Fatalf("Adjust(%+v) = %+v, want action=%s line=%q", tc.in, got, tc.wantAction, tc.wantLine)
		}
	}
}

func TestAdjust_AutoIsNoop(t *testing.T) {
	t.Parallel()

	base := Score(Input{Minute: 30, CornersTotal: 9, ShotsTotal: 20, ShotsOnTarget: 8})
	if got := Adjust(base, ModeAuto); !reflect.DeepEqual(got, base) {
		t.Fatalf("auto must not change the recommendation:\n got=%+v\nwant=%+v", got, base)
	}
}

func TestAdjust_IdempotentAndMonotonic(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()
	lines := []string{"Over 9.5", "Over 8.5", "Over 7.5", "Over 6.5"}
	actions := []Action{ActionEnter, ActionWait, ActionSkip}

	for _, line := range lines {
		for _, action := range actions {
			for confidence := 0; confidence <= 100; confidence += 3 {
				base := Recommendation{
					Action:        action,
					Confidence:    confidence,
					SuggestedLine: line,
					Checklist:     []string{"a"},
				}

				for _, mode := range []Mode{ModeAuto, ModeConservative, ModeAggressive} {
					once := policy.Adjust(base, mode)
					twice := policy.Adjust(once, mode)
					if !reflect.DeepEqual(once, twice) {
						t.Fatalf("adjust not idempotent for mode=%s base=%+v: once=%+v twice=%+v", mode, base, once, twice)
					}

					baseRung := policy.Rung(base.SuggestedLine)
					gotRung := policy.Rung(once.SuggestedLine)
					switch mode {
					case ModeConservative:
						if gotRung < baseRung {
							t.Fatalf("conservative raised line %q -> %q", base.SuggestedLine, once.SuggestedLine)
						}
					case ModeAggressive:
						if gotRung > baseRung {
							t.Fatalf("aggressive lowered line %q -> %q", base.SuggestedLine, once.SuggestedLine)
						}
					}
				}
			}
		}
	}
}

func TestAdjust_DoesNotAliasChecklist(t *testing.T) {
	t.Parallel()

	base := Recommendation{Confidence: 80, SuggestedLine: "Over 9.5", Checklist: []string{"x"}}
	out := Adjust(base, ModeConservative)
	out.Checklist[0] = "changed"
	if base.Checklist[0] != "x" {
		t.Fatalf("adjust aliased the checklist: %v", base.Checklist)
	}
}
