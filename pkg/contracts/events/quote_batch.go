package events

import "time"

// PropQuote é o preço de um bookmaker para um lado de uma linha de player prop
// em um instante. Registro imutável — nunca atualizado depois de capturado.
type PropQuote struct {
	EventID    string    `json:"event_id"`
	SportKey   string    `json:"sport_key"`
	Bookmaker  string    `json:"bookmaker"`
	MarketKey  string    `json:"market_key"`
	PlayerName string    `json:"player_name"`
	Selection  string    `json:"selection"` // "Over" | "Under" | "Win"
	Price      int       `json:"price"`     // odds americanas
	Point      float64   `json:"point"`     // valor da linha (0 para h2h)
	FetchedAt  time.Time `json:"fetched_at"`
}

// QuoteBatch é o evento publicado no tópico "prop_quotes": todas as quotes
// válidas de um evento esportivo em um ciclo de fetch.
type QuoteBatch struct {
	EventID   string      `json:"event_id"`
	SportKey  string      `json:"sport_key"`
	FetchedAt time.Time   `json:"fetched_at"`
	Quotes    []PropQuote `json:"quotes"`
}
