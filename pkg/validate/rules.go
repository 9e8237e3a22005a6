package validate

import (
	"fmt"
	"strconv"
	"strings"
)

// Stake valida um valor de aposta: precisa ser > 0.
func Stake(stake float64) (float64, error) {
	if stake <= 0 {
		return 0, fmt.Errorf("stake must be greater than 0, got %v", stake)
	}
	return stake, nil
}

// AmericanOdds valida o formato de odds americanas: <= -100 ou >= 100.
// A faixa (-100, 100) exclusiva não é uma codificação válida.
func AmericanOdds(odds int) (int, error) {
	if odds > -100 && odds < 100 {
		return 0, fmt.Errorf("odds must be <= -100 or >= 100, got %d", odds)
	}
	return odds, nil
}

// Probability valida um valor de probabilidade: 0 <= p <= 1.
func Probability(p float64) (float64, error) {
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("probability must be between 0 and 1, got %v", p)
	}
	return p, nil
}

// PositiveNumber valida que um valor nomeado é estritamente positivo.
func PositiveNumber(value float64, name string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", name, value)
	}
	return value, nil
}

// LineValue valida que a linha de um prop é numérica-coercível.
func LineValue(line any) (float64, error) {
	switch v := line.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("line value must be numeric, got %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("line value must be numeric, got %v", line)
	}
}
