package validate

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// isNumeric aceita números JSON e strings numéricas ("-110", "25.5").
func isNumeric(v any) bool {
	switch n := v.(type) {
	case float64, int, int64:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil
	default:
		return false
	}
}

// SafeFloat converte um valor frouxamente tipado para float64.
// Falha de conversão retorna o default com diagnóstico — nunca erro.
func SafeFloat(value any, def float64, log *zap.Logger) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			log.Warn("cannot convert to float", zap.String("value", v))
			return def
		}
		return f
	default:
		log.Warn("unexpected type for float conversion", zap.Any("value", value))
		return def
	}
}

// SafeInt converte um valor frouxamente tipado para int, aceitando strings
// como "123.0". Falha retorna o default com diagnóstico.
func SafeInt(value any, def int, log *zap.Logger) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			log.Warn("cannot convert to int", zap.String("value", v))
			return def
		}
		return int(f)
	default:
		log.Warn("unexpected type for int conversion", zap.Any("value", value))
		return def
	}
}

// SafeCurrency converte strings de moeda ("$123.45", "1,234.56") ou números
// para float64. Inválido retorna 0.0 com diagnóstico.
func SafeCurrency(value any, log *zap.Logger) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(v, "$", ""), ",", ""))
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			log.Warn("invalid currency value", zap.String("value", v))
			return 0.0
		}
		return f
	default:
		log.Warn("unexpected currency value type", zap.Any("value", value))
		return 0.0
	}
}

// SafeString extrai uma string de um valor frouxo; qualquer outro tipo vira o default.
func SafeString(value any, def string) string {
	if s, ok := value.(string); ok {
		return s
	}
	return def
}
