package dto

// LegRequest é um pick dentro de um slip sendo registrado
type LegRequest struct {
	Player    string  `json:"player"`
	Market    string  `json:"market"`
	Line      float64 `json:"line"`
	Selection string  `json:"selection"` // "Over" | "Under"
}

// CreateSlipRequest registra um slip multi-leg no ledger
type CreateSlipRequest struct {
	Book  string       `json:"book"` // ex: "PrizePicks"
	Stake float64      `json:"stake"`
	Note  string       `json:"note,omitempty"`
	Legs  []LegRequest `json:"legs"`
}

// SettleSlipRequest liquida um slip com o payout real recebido
type SettleSlipRequest struct {
	Payout float64 `json:"payout"`
}

// LegOutcomeRequest grava o resultado individual de um leg (hit rate)
type LegOutcomeRequest struct {
	Outcome string `json:"outcome"` // "Win" | "Loss"
}

// LegacyBetRequest registra uma aposta single no formato legado
type LegacyBetRequest struct {
	Player string  `json:"player"`
	Market string  `json:"market"`
	Line   float64 `json:"line"`
	Stake  float64 `json:"stake"`
	Odds   int     `json:"odds"`
}

// BetResultRequest grava o resultado de uma aposta single legada
type BetResultRequest struct {
	Result string `json:"result"` // "Won" | "Lost" | "Push"
}
