package signal

import "strings"

// Action is the recommended move on the corners market.
type Action string

const (
	ActionEnter Action = "ENTRAR"
	ActionWait  Action = "ESPERAR"
	ActionSkip  Action = "PULAR"
)

// Mode tunes how selective a recommendation is.
type Mode string

const (
	ModeAuto         Mode = "AUTO"
	ModeConservative Mode = "CONSERVADOR"
	ModeAggressive   Mode = "AGRESSIVO"
)

// ParseMode is case-insensitive and accepts English aliases. Anything
// unknown is AUTO.
func ParseMode(raw string) Mode {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CONSERVADOR", "CONSERVATIVE":
		return ModeConservative
	case "AGRESSIVO", "AGGRESSIVE":
		return ModeAggressive
	default:
		return ModeAuto
	}
}

// Recommendation is the advisory output for one game state. Field names on
// the wire follow the front end contract.
type Recommendation struct {
	Action             Action   `json:"acao"`
	Confidence         int      `json:"confianca"`
	SuggestedLine      string   `json:"linha_sugerida"`
	Justification      string   `json:"justificativa_curta"`
	Checklist          []string `json:"checklist"`
	CashoutPlan        string   `json:"cashout_plano"`
	BankrollManagement string   `json:"gestao_banca"`
	AppliedMode        Mode     `json:"modo_aplicado,omitempty"`
}

const (
	justificationNormal  = "Decisão baseada no ritmo (escanteios/min), pressão e volume de finalizações."
	justificationRedCard = "Cartão vermelho aumenta imprevisibilidade. Só entrar se o ritmo estiver MUITO acima da média."
	cashoutPlan          = "Se atingir ~70% da linha até 60–65’ e o ritmo cair, considerar cashout parcial/total para proteger lucro."
	bankrollManagement   = "Use entrada fracionada. Preserve parte do lucro fora da próxima aposta (ex: 30–50%)."
)

func checklist() []string {
	return []string{
		"3+ escanteios até 25’ (bom sinal)",
		"Cruzamentos/chutes bloqueados",
		"Time perdendo tende a forçar escanteios",
		"Evitar jogo truncado/sem ataques",
		"Cuidado com cartão vermelho",
	}
}
