package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// SportKey: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type     string `json:"type"`     // subscribe | unsubscribe | ping
	SportKey string `json:"sportKey"` // requerido em subscribe/unsubscribe
}

// BoardUpdate representa um board recomputado enviado aos clientes WebSocket
type BoardUpdate struct {
	SportKey string      `json:"sportKey"`
	EventID  string      `json:"eventId"`
	Payload  interface{} `json:"payload"`
}
