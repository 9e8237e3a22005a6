// Package validate guarda as duas famílias de checagem de dados externos:
//
//   - predicados estruturais e coerções Safe* que NUNCA retornam erro — payload
//     malformado vira skip-and-log, valor inconversível vira default;
//   - validadores de regra de negócio Validate* que SEMPRE retornam erro
//     descritivo — stake não positivo, odds fora de faixa etc. indicam bug de
//     lógica ou input ruim do usuário, e não podem ser silenciados.
//
// Misturar as duas famílias já foi fonte de bug (um default 0.0 de coerção
// passando adiante como stake "válido"), então a separação é contrato.
package validate

import "go.uber.org/zap"

// EventPayload valida a estrutura de nível evento de uma resposta de odds:
// precisa ser um objeto com id, sport_key, commence_time e uma lista bookmakers.
// Validação de um nível é independente dos irmãos — um bookmaker malformado não
// invalida o evento nem os demais bookmakers.
func EventPayload(data any, log *zap.Logger) bool {
	event, ok := data.(map[string]any)
	if !ok {
		log.Warn("odds payload is not an object")
		return false
	}

	for _, field := range []string{"id", "sport_key", "commence_time", "bookmakers"} {
		if _, ok := event[field]; !ok {
			log.Warn("odds payload missing required field", zap.String("field", field))
			return false
		}
	}

	if _, ok := event["bookmakers"].([]any); !ok {
		log.Warn("odds payload bookmakers field is not a list")
		return false
	}

	return true
}

// Bookmaker valida a estrutura de uma entrada de bookmaker: objeto com key e
// uma lista markets.
func Bookmaker(data any, log *zap.Logger) bool {
	bk, ok := data.(map[string]any)
	if !ok {
		return false
	}

	for _, field := range []string{"key", "markets"} {
		if _, ok := bk[field]; !ok {
			log.Warn("bookmaker missing field", zap.String("field", field))
			return false
		}
	}

	if _, ok := bk["markets"].([]any); !ok {
		log.Warn("bookmaker markets field is not a list")
		return false
	}

	return true
}

// Market valida a estrutura de um mercado: objeto com key e lista outcomes.
func Market(data any) bool {
	mk, ok := data.(map[string]any)
	if !ok {
		return false
	}

	for _, field := range []string{"key", "outcomes"} {
		if _, ok := mk[field]; !ok {
			return false
		}
	}

	_, ok = mk["outcomes"].([]any)
	return ok
}

// Outcome valida a estrutura de um outcome (opção apostável): objeto com name
// e price numérico-coercível. Price ausente, nulo ou não numérico falha.
func Outcome(data any, log *zap.Logger) bool {
	oc, ok := data.(map[string]any)
	if !ok {
		return false
	}

	for _, field := range []string{"name", "price"} {
		if _, ok := oc[field]; !ok {
			return false
		}
	}

	if !isNumeric(oc["price"]) {
		log.Warn("outcome has invalid price value", zap.Any("price", oc["price"]))
		return false
	}

	return true
}
