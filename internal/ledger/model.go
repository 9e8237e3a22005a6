// Package ledger modela slips de apostas multi-leg, o ciclo de liquidação e
// as métricas derivadas (ROI, win rate, trajetória de bankroll). A lógica de
// negócio vive aqui como funções puras; a persistência fica em ledger/repo.
package ledger

import "time"

// Status de um slip. Pending é o inicial; os demais são terminais e só mudam
// via nova liquidação (idempotente, sobrescreve).
const (
	StatusPending = "Pending"
	StatusProfit  = "Profit"
	StatusPush    = "Push"
	StatusPartial = "Partial"
	StatusLost    = "Lost"

	// StatusWon é sinônimo legado de Profit, aceito em dados antigos
	StatusWon = "Won"
)

// Slip é uma aposta multi-leg registrada pelo usuário.
type Slip struct {
	ID        string
	Book      string
	Stake     float64
	Payout    float64
	Status    string
	Note      string
	CreatedAt time.Time
	SettledAt *time.Time
}

// Leg é um pick dentro de um slip. Outcome fica vazio até o usuário registrar
// o resultado individual (usado pelas consultas de hit rate).
type Leg struct {
	ID        int64
	SlipID    string
	Player    string
	Market    string
	Line      float64
	Selection string
	Outcome   string
	CreatedAt time.Time
}

// NewLeg é o insumo de criação de um leg.
type NewLeg struct {
	Player    string
	Market    string
	Line      float64
	Selection string
}

// SlipSummary é um slip anotado para listagem: contagem de legs, resumo
// abreviado dos picks e P/L derivado (nil enquanto Pending).
type SlipSummary struct {
	Slip
	LegCount   int
	Picks      string
	ProfitLoss *float64
}

// Analytics agrega as métricas de desempenho sobre todos os slips.
type Analytics struct {
	Wins        int
	Losses      int
	Pending     int
	TotalStaked float64
	TotalProfit float64
	WinRate     float64
	ROI         float64
	// Bankroll começa no baseline 100.0 e ganha uma entrada por slip
	// liquidado, em ordem cronológica
	Bankroll []float64
}
