// Package matcher implementa o pareamento de linhas sharp × DFS e o cálculo
// de EV por oportunidade. É lógica pura sobre um batch de quotes — persistência
// fica no consumer.
package matcher

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/shared/config"
	"github.com/villela/pickem-ev-engine/pkg/contracts/events"
	"github.com/villela/pickem-ev-engine/pkg/oddsmath"
	"github.com/villela/pickem-ev-engine/pkg/validate"
)

// Opportunity é um edge computado: uma linha (player, mercado direcionado,
// valor) pareada entre o book sharp de referência e um book DFS.
type Opportunity struct {
	EventID         string
	SportKey        string
	PlayerName      string
	Market          string // direcionado, ex: "player_points_over"
	LineValue       float64
	SharpOverPrice  int
	SharpUnderPrice int
	FairWinProb     float64
	EVPercentage    float64
	DFSBook         string
	SharpSource     string
	ComputedAt      time.Time
}

// LineEV é uma entrada de diagnóstico: o EV de um lado de uma linha,
// registrado mesmo sem match DFS.
type LineEV struct {
	PlayerName string
	MarketKey  string
	LineValue  float64
	Selection  string
	FairProb   float64
	EVPct      float64
}

// Result agrega a saída de um batch: oportunidades ranqueadas por EV
// decrescente e contadores de descarte por estágio.
type Result struct {
	Opportunities []Opportunity
	AllEVs        []LineEV

	GroupsSeen     int
	GroupsNoSharp  int
	GroupsOneSided int
	GroupsBadOdds  int
}

// lineKey agrupa quotes por (player, mercado, linha). A linha faz parte da
// chave: sharp em 25.5 e DFS em 26.5 são grupos diferentes e não casam —
// não existe interpolação entre linhas.
type lineKey struct {
	player string
	market string
	line   float64
}

// sideQuote guarda a origem da quote junto do preço observado.
type sideQuote struct {
	eventID  string
	sportKey string
	price    int
}

// FindOpportunities agrupa as quotes de um ciclo, seleciona a referência sharp
// (primário, com fallback), remove o vig, calcula EV contra o breakeven
// configurado e emite uma Opportunity por (linha, book DFS, lado) com quote
// dos dois lados casada. Quotes malformadas são puladas com diagnóstico e
// nunca abortam o batch; grupo sem referência sharp é skip silencioso.
func FindOpportunities(quotes []events.PropQuote, cfg config.Analysis, log *zap.Logger) Result {
	now := time.Now().UTC()

	// 1) agrupa por (player, mercado, linha) e indexa por bookmaker/lado
	groups := make(map[lineKey]map[string]map[string]sideQuote)
	for _, q := range quotes {
		key := lineKey{player: q.PlayerName, market: q.MarketKey, line: q.Point}
		if groups[key] == nil {
			groups[key] = make(map[string]map[string]sideQuote)
		}
		if groups[key][q.Bookmaker] == nil {
			groups[key][q.Bookmaker] = make(map[string]sideQuote)
		}
		groups[key][q.Bookmaker][q.Selection] = sideQuote{eventID: q.EventID, sportKey: q.SportKey, price: q.Price}
	}

	res := Result{GroupsSeen: len(groups)}

	for key, books := range groups {
		// 2) referência sharp: primário, senão fallback
		sharpSource := cfg.SharpBookmaker
		sharp, ok := books[sharpSource]
		if !ok {
			sharpSource = cfg.FallbackSharpBookmaker
			sharp, ok = books[sharpSource]
		}
		if !ok {
			// comum e esperado: sem referência não há probabilidade justa
			res.GroupsNoSharp++
			continue
		}

		// 3) precisa dos dois lados para remover o vig
		over, hasOver := sharp["Over"]
		under, hasUnder := sharp["Under"]
		if !hasOver || !hasUnder {
			res.GroupsOneSided++
			continue
		}

		// 4) preços sharp precisam ser odds americanas legais
		if _, err := validate.AmericanOdds(over.price); err != nil {
			log.Warn("sharp over price out of range",
				zap.String("player", key.player), zap.Int("price", over.price))
			res.GroupsBadOdds++
			continue
		}
		if _, err := validate.AmericanOdds(under.price); err != nil {
			log.Warn("sharp under price out of range",
				zap.String("player", key.player), zap.Int("price", under.price))
			res.GroupsBadOdds++
			continue
		}

		// 5) devig + 6) EV contra o breakeven da estrutura alvo
		fairOver, fairUnder := oddsmath.Devig(over.price, under.price)
		overEV := oddsmath.EVPercentage(fairOver, cfg.BreakevenProb)
		underEV := oddsmath.EVPercentage(fairUnder, cfg.BreakevenProb)

		// 7) desconto de confiança só come edge positivo — nunca piora EV
		// negativo nem inventa EV positivo
		confidence := cfg.Confidence(sharpSource)
		if overEV > 0 {
			overEV *= confidence
		}
		if underEV > 0 {
			underEV *= confidence
		}

		res.AllEVs = append(res.AllEVs,
			LineEV{PlayerName: key.player, MarketKey: key.market, LineValue: key.line,
				Selection: "Over", FairProb: fairOver, EVPct: overEV},
			LineEV{PlayerName: key.player, MarketKey: key.market, LineValue: key.line,
				Selection: "Under", FairProb: fairUnder, EVPct: underEV},
		)

		// 8) um lado de um book DFS presente já gera oportunidade —
		// presença no Over não exige presença no Under
		for _, dfsKey := range cfg.DFSBookmakers {
			dfs, ok := books[dfsKey]
			if !ok {
				continue
			}
			bookName := cfg.DFSBookName(dfsKey)

			if _, ok := dfs["Over"]; ok {
				res.Opportunities = append(res.Opportunities, Opportunity{
					EventID:         over.eventID,
					SportKey:        over.sportKey,
					PlayerName:      key.player,
					Market:          key.market + "_over",
					LineValue:       key.line,
					SharpOverPrice:  over.price,
					SharpUnderPrice: under.price,
					FairWinProb:     fairOver,
					EVPercentage:    overEV,
					DFSBook:         bookName,
					SharpSource:     sharpSource,
					ComputedAt:      now,
				})
			}
			if _, ok := dfs["Under"]; ok {
				res.Opportunities = append(res.Opportunities, Opportunity{
					EventID:         under.eventID,
					SportKey:        under.sportKey,
					PlayerName:      key.player,
					Market:          key.market + "_under",
					LineValue:       key.line,
					SharpOverPrice:  over.price,
					SharpUnderPrice: under.price,
					FairWinProb:     fairUnder,
					EVPercentage:    underEV,
					DFSBook:         bookName,
					SharpSource:     sharpSource,
					ComputedAt:      now,
				})
			}
		}
	}

	// 9) resultado ranqueado por EV decrescente
	sort.SliceStable(res.Opportunities, func(i, j int) bool {
		return res.Opportunities[i].EVPercentage > res.Opportunities[j].EVPercentage
	})
	sort.SliceStable(res.AllEVs, func(i, j int) bool {
		return res.AllEVs[i].EVPct > res.AllEVs[j].EVPct
	})

	logTopEVs(res.AllEVs, log)

	return res
}

// logTopEVs registra as 3 maiores linhas por EV, com ou sem match DFS e
// independente do sinal — visibilidade de diagnóstico do ciclo.
func logTopEVs(all []LineEV, log *zap.Logger) {
	if len(all) == 0 {
		return
	}
	top := all
	if len(top) > 3 {
		top = top[:3]
	}
	for _, e := range top {
		log.Info("top EV line",
			zap.String("player", e.PlayerName),
			zap.String("market", e.MarketKey),
			zap.String("selection", e.Selection),
			zap.Float64("line", e.LineValue),
			zap.String("fair_prob", fmt.Sprintf("%.1f%%", e.FairProb*100)),
			zap.String("ev", fmt.Sprintf("%+.1f%%", e.EVPct)),
		)
	}
}
