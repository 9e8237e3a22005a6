package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/pkg/contracts/events"
	"github.com/villela/pickem-ev-engine/pkg/validate"
)

// ParsePropsPayload converte a resposta crua da Odds API em PropQuotes tipadas.
// A API às vezes retorna um objeto único e às vezes uma lista; os dois casos são
// aceitos. Cada nível (evento → bookmaker → mercado → outcome) é validado de
// forma independente: entrada malformada é pulada com diagnóstico e os irmãos
// continuam sendo processados. Nenhum mapa não tipado atravessa esta fronteira.
func ParsePropsPayload(raw any, sportKey string, fetchedAt time.Time, log *zap.Logger) []events.PropQuote {
	var eventsData []any
	switch v := raw.(type) {
	case []any:
		eventsData = v
	case map[string]any:
		eventsData = []any{v}
	default:
		log.Warn("props payload has unexpected shape")
		return nil
	}

	var quotes []events.PropQuote

	for _, ev := range eventsData {
		if !validate.EventPayload(ev, log) {
			continue
		}
		event := ev.(map[string]any)
		eventID := validate.SafeString(event["id"], "")

		for _, bm := range event["bookmakers"].([]any) {
			if !validate.Bookmaker(bm, log) {
				continue
			}
			bookmaker := bm.(map[string]any)
			bookmakerKey := validate.SafeString(bookmaker["key"], "")

			for _, mk := range bookmaker["markets"].([]any) {
				if !validate.Market(mk) {
					continue
				}
				market := mk.(map[string]any)
				marketKey := validate.SafeString(market["key"], "")

				for _, oc := range market["outcomes"].([]any) {
					if !validate.Outcome(oc, log) {
						continue
					}
					outcome := oc.(map[string]any)

					q, ok := quoteFromOutcome(outcome, marketKey, log)
					if !ok {
						continue
					}

					q.EventID = eventID
					q.SportKey = sportKey
					q.Bookmaker = bookmakerKey
					q.MarketKey = marketKey
					q.FetchedAt = fetchedAt
					quotes = append(quotes, q)
				}
			}
		}
	}

	return quotes
}

// quoteFromOutcome extrai player/lado/preço/linha de um outcome já validado.
// Props carregam o jogador em description e a linha em point; mercados h2h
// carregam o time em name, lado fixo "Win" e linha zero.
func quoteFromOutcome(outcome map[string]any, marketKey string, log *zap.Logger) (events.PropQuote, bool) {
	price := validate.SafeInt(outcome["price"], 0, log)

	if marketKey == "h2h" {
		team := validate.SafeString(outcome["name"], "")
		if team == "" || price == 0 {
			return events.PropQuote{}, false
		}
		return events.PropQuote{
			PlayerName: team,
			Selection:  "Win",
			Price:      price,
			Point:      0.0,
		}, true
	}

	player := validate.SafeString(outcome["description"], "")
	selection := validate.SafeString(outcome["name"], "")
	point, hasPoint := outcome["point"]

	if player == "" || selection == "" || price == 0 || !hasPoint {
		return events.PropQuote{}, false
	}

	line, err := validate.LineValue(point)
	if err != nil {
		log.Warn("outcome has non-numeric line", zap.String("player", player), zap.Any("point", point))
		return events.PropQuote{}, false
	}

	return events.PropQuote{
		PlayerName: player,
		Selection:  selection,
		Price:      price,
		Point:      line,
	}, true
}
