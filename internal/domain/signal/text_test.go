package signal

import (
	"testing"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/live-corners/internal/domain/live"
)

func TestGameState_TextFieldsAcceptAnyScalar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw   string
		score Text
		notes Text
		side  live.PressureSide
	}{
		{raw: `{"score": "2-1", "notes": " pressão ", "pressure_side": "Mandante"}`, score: "2-1", notes: " pressão ", side: live.PressureHome},
		{raw: `{"score": 2, "notes": true, "pressure_side": 1}`, score: "2", notes: "true", side: ""},
		{raw: `{"score": null, "notes": {"a": 1}, "pressure_side": ["Visitante"]}`, score: "", notes: "", side: ""},
		{raw: `{"score": 1.5e1, "notes": false}`, score: "1.5e1", notes: "false", side: ""},
	}

	for _, tc := range cases {
		var got GameState
		if err := sonic.Unmarshal([]byte(tc.raw), &got); err != nil {
			t.Fatalf("unmarshal %s error: %v", tc.raw, err)
		}
		if got.Score != tc.score || got.Notes != tc.notes || got.PressureSide != tc.side {
			t.Fatalf("unmarshal %s got score=%q notes=%q side=%q", tc.raw, got.Score, got.Notes, got.PressureSide)
		}
	}
}

func TestGameState_ScalarSideGetsNoPressureBonus(t *testing.T) {
	t.Parallel()

	var state GameState
	raw := `{"minute": 30, "corners_total": 9, "shots_total": 20, "shots_on_target": 8, "pressure_side": 5}`
	if err := sonic.Unmarshal([]byte(raw), &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := Score(state.Input()).Confidence; got != 88 {
		t.Fatalf("unexpected confidence got=%d want=88", got)
	}
}
