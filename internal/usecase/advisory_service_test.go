package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/riskibarqy/live-corners/internal/domain/live"
	"github.com/riskibarqy/live-corners/internal/domain/signal"
	signalmock "github.com/riskibarqy/live-corners/internal/mocks/domain/signal"
	"github.com/stretchr/testify/mock"
)

func sampleGameState() signal.GameState {
	return signal.GameState{
		Minute:        signal.NewNumber(30),
		Score:         "1-0",
		CornersTotal:  signal.NewNumber(9),
		ShotsTotal:    signal.NewNumber(20),
		ShotsOnTarget: signal.NewNumber(8),
		PressureSide:  live.PressureHome,
	}
}

func TestAdvisoryService_NoRefinerIsHeuristicOnly(t *testing.T) {
	t.Parallel()

	svc := NewAdvisoryService(nil, signal.DefaultPolicy(), nil)
	got := svc.Analyze(context.Background(), AnalyzeInput{State: sampleGameState(), Mode: signal.ModeConservative})

	if got.Mode != AnalysisHeuristicOnly {
		t.Fatalf("unexpected mode got=%q want=%q", got.Mode, AnalysisHeuristicOnly)
	}
	if got.Result == nil || got.Result.SuggestedLine != "Over 8.5" {
		t.Fatalf("unexpected result %+v", got.Result)
	}
	if got.Note == "" {
		t.Fatalf("heuristic-only analysis must carry a note")
	}
}

func TestAdvisoryService_NotConfiguredRefinerIsHeuristicOnly(t *testing.T) {
	t.Parallel()

	refiner := signalmock.NewRefiner(t)
	refiner.
		On("Refine", mock.Anything, mock.Anything, signal.ModeAuto).
		Return(signal.Failed(fmt.Errorf("%w: OPENAI_API_KEY", ErrNotConfigured))).
		Once()

	svc := NewAdvisoryService(refiner, signal.DefaultPolicy(), nil)
	got := svc.Analyze(context.Background(), AnalyzeInput{State: sampleGameState(), Mode: signal.ModeAuto})
	if got.Mode != AnalysisHeuristicOnly {
		t.Fatalf("unexpected mode got=%q want=%q", got.Mode, AnalysisHeuristicOnly)
	}
}

func TestAdvisoryService_FailureFallsBackToAdjustedHeuristic(t *testing.T) {
	t.Parallel()

	refiner := signalmock.NewRefiner(t)
	longBody := strings.Repeat("x", 1500)
	refiner.
		On("Refine", mock.Anything, mock.Anything, signal.ModeAggressive).
		Return(signal.Failed(errors.New(longBody))).
		Once()

	policy := signal.DefaultPolicy()
	svc := NewAdvisoryService(refiner, policy, nil)
	state := sampleGameState()
	got := svc.Analyze(context.Background(), AnalyzeInput{State: state, Mode: signal.ModeAggressive})

	want := policy.Adjust(policy.Score(state.Input()), signal.ModeAggressive)
	if got.Mode != AnalysisHeuristicFallback {
		t.Fatalf("unexpected mode got=%q want=%q", got.Mode, AnalysisHeuristicFallback)
	}
	if got.Result == nil || !reflect.DeepEqual(*got.Result, want) {
		t.Fatalf("fallback must be the adjusted heuristic:\n got=%+v\nwant=%+v", got.Result, want)
	}
	if len(got.APIError) != 1000 {
		t.Fatalf("unexpected api error length got=%d want=1000", len(got.APIError))
	}
}

func TestAdvisoryService_ParsedIsModeAdjusted(t *testing.T) {
	t.Parallel()

	refiner := signalmock.NewRefiner(t)
	refiner.
		On("Refine", mock.Anything, mock.Anything, signal.ModeConservative).
		Return(signal.Parsed(signal.Recommendation{
			Action:        signal.ActionEnter,
			Confidence:    68,
			SuggestedLine: "Over 9.5",
		})).
		Once()

	svc := NewAdvisoryService(refiner, signal.DefaultPolicy(), nil)
	got := svc.Analyze(context.Background(), AnalyzeInput{State: sampleGameState(), Mode: signal.ModeConservative})

	if got.Mode != AnalysisAI || got.Result == nil {
		t.Fatalf("unexpected analysis %+v", got)
	}
	if got.Result.Action != signal.ActionWait || got.Result.SuggestedLine != "Over 8.5" || got.Result.AppliedMode != signal.ModeConservative {
		t.Fatalf("refined result not adjusted: %+v", got.Result)
	}
}

func TestAdvisoryService_RawTextKeepsHeuristic(t *testing.T) {
	t.Parallel()

	refiner := signalmock.NewRefiner(t)
	refiner.On("Refine", mock.Anything, mock.Anything, signal.ModeAuto).Return(signal.RawText("")).Once()

	svc := NewAdvisoryService(refiner, signal.DefaultPolicy(), nil)
	got := svc.Analyze(context.Background(), AnalyzeInput{State: sampleGameState(), Mode: signal.ModeAuto})

	if got.Mode != AnalysisAIUnparsed || got.Raw != "(sem texto)" {
		t.Fatalf("unexpected analysis mode=%q raw=%q", got.Mode, got.Raw)
	}
	if got.Result != nil {
		t.Fatalf("unparsed analysis must not carry a result, got %+v", got.Result)
	}
	if got.Heuristic == nil || got.Heuristic.Confidence != 93 {
		t.Fatalf("unexpected heuristic %+v", got.Heuristic)
	}
}
