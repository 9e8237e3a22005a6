package dto

// CreateSlipResponse devolve o identificador do slip recém-criado
type CreateSlipResponse struct {
	SlipID string `json:"slipId"`
	Status string `json:"status"` // Pending
}

// SlipListItem é um slip anotado para listagem no dashboard
type SlipListItem struct {
	SlipID     string   `json:"slipId"`
	Book       string   `json:"book"`
	Stake      float64  `json:"stake"`
	Payout     float64  `json:"payout"`
	Status     string   `json:"status"`
	Note       string   `json:"note,omitempty"`
	LegCount   int      `json:"legCount"`
	Picks      string   `json:"picks"`
	ProfitLoss *float64 `json:"profitLoss"` // null enquanto Pending
	CreatedAt  string   `json:"createdAt"`
	SettledAt  *string  `json:"settledAt,omitempty"`
}

// LegResponse é um leg de um slip
type LegResponse struct {
	LegID     int64   `json:"legId"`
	Player    string  `json:"player"`
	Market    string  `json:"market"`
	Line      float64 `json:"line"`
	Selection string  `json:"selection"`
	Outcome   string  `json:"outcome,omitempty"`
}

// AnalyticsResponse agrega as métricas de desempenho do ledger
type AnalyticsResponse struct {
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Pending     int       `json:"pending"`
	TotalStaked float64   `json:"totalStaked"`
	TotalProfit float64   `json:"totalProfit"`
	WinRate     float64   `json:"winRate"`
	ROI         float64   `json:"roi"`
	Bankroll    []float64 `json:"bankroll"`
}

// HitRateResponse devolve os últimos resultados binários de um jogador em um
// mercado (1=acertou, 0=errou), do mais recente para o mais antigo
type HitRateResponse struct {
	Player  string `json:"player"`
	Market  string `json:"market"`
	Results []int  `json:"results"`
}
