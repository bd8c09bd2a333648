package usecase

import (
	"context"
	"errors"

	"github.com/riskibarqy/live-corners/internal/domain/signal"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
)

// Analysis modes reported to the caller.
const (
	AnalysisHeuristicOnly     = "heuristic_only"
	AnalysisHeuristicFallback = "heuristic_fallback"
	AnalysisAI                = "ai"
	AnalysisAIUnparsed        = "ai_unparsed"
)

const (
	noteNotConfigured = "Configure OPENAI_API_KEY no .env para ativar IA."
	noteRefineFailed  = "Falha na IA, usando heurística local."
	emptyRawText      = "(sem texto)"
	maxAPIErrorLen    = 1000
)

type AnalyzeInput struct {
	State signal.GameState
	Mode  signal.Mode
}

// AnalyzeResult always carries a usable recommendation: Result for every
// mode except ai_unparsed, where Heuristic holds it next to the raw text.
type AnalyzeResult struct {
	Mode      string                 `json:"mode"`
	Result    *signal.Recommendation `json:"result,omitempty"`
	Heuristic *signal.Recommendation `json:"heuristic,omitempty"`
	Raw       string                 `json:"raw,omitempty"`
	Note      string                 `json:"note,omitempty"`
	APIError  string                 `json:"api_error,omitempty"`
}

type AdvisoryService struct {
	refiner signal.Refiner
	policy  signal.Policy
	logger  *logging.Logger
}

// NewAdvisoryService accepts a nil refiner, in which case every analysis is
// heuristic only.
func NewAdvisoryService(refiner signal.Refiner, policy signal.Policy, logger *logging.Logger) *AdvisoryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdvisoryService{
		refiner: refiner,
		policy:  policy,
		logger:  logger,
	}
}

func (s *AdvisoryService) Analyze(ctx context.Context, input AnalyzeInput) AnalyzeResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdvisoryService.Analyze")
	defer span.End()

	local := s.policy.Adjust(s.policy.Score(input.State.Input()), input.Mode)
	if s.refiner == nil {
		return AnalyzeResult{Mode: AnalysisHeuristicOnly, Result: &local, Note: noteNotConfigured}
	}

	refined := s.refiner.Refine(ctx, input.State, input.Mode)
	switch refined.Kind {
	case signal.RefineParsed:
		adjusted := s.policy.Adjust(refined.Recommendation, input.Mode)
		return AnalyzeResult{Mode: AnalysisAI, Result: &adjusted}
	case signal.RefineRawText:
		raw := refined.Raw
		if raw == "" {
			raw = emptyRawText
		}
		return AnalyzeResult{Mode: AnalysisAIUnparsed, Raw: raw, Heuristic: &local}
	default:
		if errors.Is(refined.Err, ErrNotConfigured) {
			return AnalyzeResult{Mode: AnalysisHeuristicOnly, Result: &local, Note: noteNotConfigured}
		}
		apiError := "unknown error"
		if refined.Err != nil {
			apiError = refined.Err.Error()
		}
		s.logger.WarnContext(ctx, "refine recommendation failed, using heuristic", "error", refined.Err)
		return AnalyzeResult{
			Mode:     AnalysisHeuristicFallback,
			Result:   &local,
			Note:     noteRefineFailed,
			APIError: Truncate(apiError, maxAPIErrorLen),
		}
	}
}
