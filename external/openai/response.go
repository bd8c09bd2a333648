package openai

import (
	"math"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/live-corners/internal/domain/signal"
)

const defaultConfidence = 50

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
	Text  textOptions    `json:"text"`
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type textOptions struct {
	Format textFormat `json:"format"`
}

type textFormat struct {
	Type string `json:"type"`
}

type responsesEnvelope struct {
	Output     []outputItem `json:"output"`
	OutputText string       `json:"output_text"`
}

type outputItem struct {
	Content []outputContent `json:"content"`
}

// Text is either a plain string or an object carrying "value".
type outputContent struct {
	Text any `json:"text"`
}

type modelRecommendation struct {
	Action             string        `json:"acao"`
	Confidence         signal.Number `json:"confianca"`
	SuggestedLine      string        `json:"linha_sugerida"`
	Justification      string        `json:"justificativa_curta"`
	Checklist          []string      `json:"checklist"`
	CashoutPlan        string        `json:"cashout_plano"`
	BankrollManagement string        `json:"gestao_banca"`
}

// outputText concatenates every text fragment of the response, falling back
// to the aggregated output_text field.
func (e responsesEnvelope) outputText() string {
	var b strings.Builder
	for _, item := range e.Output {
		for _, content := range item.Content {
			switch text := content.Text.(type) {
			case string:
				b.WriteString(text)
			case map[string]any:
				if value, ok := text["value"].(string); ok {
					b.WriteString(value)
				}
			}
		}
	}
	if b.Len() == 0 {
		return e.OutputText
	}
	return b.String()
}

// parseRecommendation decodes the model's JSON answer. Markdown code fences
// around the object are tolerated.
func parseRecommendation(text string) (signal.Recommendation, bool) {
	cleaned := stripCodeFence(text)
	if cleaned == "" || cleaned[0] != '{' {
		return signal.Recommendation{}, false
	}

	var out modelRecommendation
	if err := sonic.UnmarshalString(cleaned, &out); err != nil {
		return signal.Recommendation{}, false
	}

	confidence := math.Round(out.Confidence.Or(defaultConfidence))
	confidence = math.Max(0, math.Min(100, confidence))

	return signal.Recommendation{
		Action:             signal.Action(strings.ToUpper(strings.TrimSpace(out.Action))),
		Confidence:         int(confidence),
		SuggestedLine:      strings.TrimSpace(out.SuggestedLine),
		Justification:      out.Justification,
		Checklist:          out.Checklist,
		CashoutPlan:        out.CashoutPlan,
		BankrollManagement: out.BankrollManagement,
	}, true
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
