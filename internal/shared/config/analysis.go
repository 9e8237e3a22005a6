package config

// Analysis agrupa os parâmetros de cálculo de EV e matching de oportunidades.
// É um valor imutável passado explicitamente para o matcher e o ingest — nada
// aqui vive como estado global, o que permite testar com configurações
// alternativas de forma determinística.
type Analysis struct {
	// Estrutura de pagamento alvo (5-Pick Flex pagando 10x)
	PayoutMultiplier float64
	// Probabilidade de vitória por leg exigida para breakeven nessa estrutura.
	// Valor de tuning empírico, não derivado de PayoutMultiplier.
	BreakevenProb float64

	// Referência sharp: primário e fallback
	SharpBookmaker         string
	FallbackSharpBookmaker string

	// Fator de confiança por fonte sharp, aplicado apenas sobre EV positivo.
	// Pinnacle é o padrão-ouro (1.0); FanDuel carrega mais vig e linhas menos
	// eficientes, então o EV é descontado.
	SharpConfidence map[string]float64

	// Books DFS monitorados: chave da API → nome de exibição
	DFSBookmakers []string
	DFSBookNames  map[string]string

	// Esportes suportados: nome legível → chave da API
	SportsMap map[string]string

	// Mercados de props buscados por evento
	PropMarkets []string

	// Janela de fetch: só busca props de jogos começando dentro desse prazo
	FetchWindowHours int

	// Retenção de snapshots de odds antes do prune
	SnapshotRetentionDays int
}

// DefaultAnalysis retorna a configuração padrão de análise.
func DefaultAnalysis() Analysis {
	return Analysis{
		PayoutMultiplier: 10.0,
		BreakevenProb:    0.5425,

		SharpBookmaker:         "pinnacle",
		FallbackSharpBookmaker: "fanduel",
		SharpConfidence: map[string]float64{
			"pinnacle": 1.0,
			"fanduel":  0.75,
		},

		DFSBookmakers: []string{"prizepicks", "underdog", "betr_us_dfs", "pick6"},
		DFSBookNames: map[string]string{
			"prizepicks":  "PrizePicks",
			"underdog":    "Underdog",
			"betr_us_dfs": "Betr",
			"pick6":       "DK Pick6",
		},

		SportsMap: map[string]string{
			"NBA":   "basketball_nba",
			"NCAAB": "basketball_ncaab",
			"NFL":   "americanfootball_nfl",
			"NCAAF": "americanfootball_ncaaf",
			"MLB":   "baseball_mlb",
			"NHL":   "icehockey_nhl",
		},

		PropMarkets: []string{"player_points", "player_assists", "player_threes"},

		FetchWindowHours:      12,
		SnapshotRetentionDays: 7,
	}
}

// SportKeys retorna as chaves de API de todos os esportes suportados.
func (a Analysis) SportKeys() []string {
	keys := make([]string, 0, len(a.SportsMap))
	for _, k := range a.SportsMap {
		keys = append(keys, k)
	}
	return keys
}

// Confidence retorna o fator de confiança de uma fonte sharp (1.0 se desconhecida).
func (a Analysis) Confidence(bookmaker string) float64 {
	if c, ok := a.SharpConfidence[bookmaker]; ok {
		return c
	}
	return 1.0
}

// DFSBookName traduz a chave da API para o nome de exibição do book DFS.
func (a Analysis) DFSBookName(key string) string {
	if name, ok := a.DFSBookNames[key]; ok {
		return name
	}
	return key
}
