package openai

import (
	"strconv"

	"github.com/riskibarqy/live-corners/internal/domain/signal"
	"github.com/valyala/bytebufferpool"
)

const systemPrompt = `Você é um analista focado em ESCANTEIOS ao vivo.
Objetivo: reduzir decisões emocionais e sugerir entradas com base em sinais estatísticos.
NÃO prometa lucro, NÃO garanta ganhos. Seja direto e disciplinado.
Responda em PT-BR e retorne APENAS JSON estrito com:
{
  "acao": "ENTRAR" | "ESPERAR" | "PULAR",
  "confianca": number (0-100),
  "linha_sugerida": string,
  "justificativa_curta": string,
  "checklist": string[],
  "cashout_plano": string,
  "gestao_banca": string
}
Regras:
- Se houver cartão vermelho, prefira "PULAR" ou "ESPERAR", salvo ritmo MUITO forte.
- Se o modo for CONSERVADOR: sugira linhas mais baixas (Over 6.5/7.5/8.5) e seja mais seletivo.
- Se o modo for AGRESSIVO: pode aceitar um pouco mais de risco, mas sem exagero.`

// buildUserPrompt renders the game state the way the model sees it.
// Invalid numbers print as N/A.
func buildUserPrompt(state signal.GameState, mode signal.Mode) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(label, value string) {
		_, _ = buf.WriteString("- ")
		_, _ = buf.WriteString(label)
		_, _ = buf.WriteString(": ")
		_, _ = buf.WriteString(value)
		_ = buf.WriteByte('\n')
	}

	_, _ = buf.WriteString("Modo: ")
	_, _ = buf.WriteString(string(mode))
	_, _ = buf.WriteString("\nDados do jogo (ao vivo):\n")
	line("Minuto", formatNumber(state.Minute))
	line("Placar", orNA(state.Score.String()))
	line("Escanteios total", formatNumber(state.CornersTotal))
	line("Escanteios mandante/visitante", formatNumber(state.CornersHome)+"/"+formatNumber(state.CornersAway))
	line("Finalizações totais", formatNumber(state.ShotsTotal))
	line("Finalizações no alvo", formatNumber(state.ShotsOnTarget))
	line("Ataques perigosos", formatNumber(state.DangerousAttacks))
	line("Quem pressiona", orNA(string(state.PressureSide)))
	line("Cartões vermelhos", formatNumber(state.RedCards))
	line("Observações", state.Notes.String())
	_, _ = buf.WriteString("Contexto: usuário quer consistência em escanteios ao vivo, com disciplina e gestão de banca.")

	return buf.String()
}

func formatNumber(n signal.Number) string {
	if !n.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
