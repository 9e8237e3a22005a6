package dto

// Opportunity representa um edge computado exposto no board: linha pareada
// entre o book sharp de referência e um book DFS, com EV calculado
type Opportunity struct {
	EventID         string  `json:"eventId"`
	SportKey        string  `json:"sportKey"`
	PlayerName      string  `json:"playerName"`
	Market          string  `json:"market"`
	LineValue       float64 `json:"lineValue"`
	SharpOverPrice  int     `json:"sharpOverPrice"`
	SharpUnderPrice int     `json:"sharpUnderPrice"`
	FairWinProb     float64 `json:"fairWinProb"`
	EVPercentage    float64 `json:"evPercentage"`
	DFSBook         string  `json:"dfsBook"`
	SharpSource     string  `json:"sharpSource"`
	ComputedAt      string  `json:"computedAt"`
}
