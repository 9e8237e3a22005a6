// Package oddsmath concentra a matemática pura de odds americanas e EV.
// Nenhuma função aqui faz I/O ou depende de configuração externa.
package oddsmath

import "math"

// ImpliedProbability converte odds americanas em probabilidade implícita.
// Odds positivas (+150) representam o lucro sobre 100; negativas (-150)
// representam quanto é preciso apostar para lucrar 100.
//
//	+150 → 0.40
//	-110 → 0.5238...
//	+100 → 0.50
//
// A validade das odds (|odds| >= 100) é responsabilidade do chamador.
func ImpliedProbability(american int) float64 {
	if american > 0 {
		return 100.0 / (float64(american) + 100.0)
	}
	abs := math.Abs(float64(american))
	return abs / (abs + 100.0)
}

// Devig remove o vig de um mercado de dois lados pelo método multiplicativo:
// soma as probabilidades implícitas (a soma excede 1.0 pelo valor do vig) e
// normaliza cada lado pela soma. Assume que o bookmaker distribui a margem
// proporcionalmente entre os dois lados — aproximação padrão da indústria
// para props de dois resultados.
//
// O par retornado soma 1.0 (dentro da tolerância de ponto flutuante).
func Devig(overOdds, underOdds int) (fairOver, fairUnder float64) {
	overImplied := ImpliedProbability(overOdds)
	underImplied := ImpliedProbability(underOdds)

	total := overImplied + underImplied

	return overImplied / total, underImplied / total
}

// EVPercentage calcula o EV% de uma probabilidade justa contra a probabilidade
// de breakeven da estrutura de pagamento: ((fair / breakeven) - 1) * 100.
// Zero no breakeven exato, positivo acima, negativo abaixo.
func EVPercentage(fairProb, breakevenProb float64) float64 {
	return ((fairProb / breakevenProb) - 1) * 100
}

// ParlayProbability retorna a probabilidade combinada de um parlay de eventos
// independentes: o produto das probabilidades das legs. Lista vazia retorna
// 1.0 (identidade multiplicativa).
func ParlayProbability(legProbs []float64) float64 {
	p := 1.0
	for _, prob := range legProbs {
		p *= prob
	}
	return p
}

// ParlayEV calcula o EV por unidade apostada de um parlay:
// (probabilidade combinada * multiplicador de pagamento) - 1.
// O "-1" desconta o stake inicial.
func ParlayEV(legProbs []float64, payoutMultiplier float64) float64 {
	return ParlayProbability(legProbs)*payoutMultiplier - 1
}

// BreakevenProbability retorna a probabilidade de vitória por leg necessária
// para que um parlay de legs equiprováveis tenha EV zero:
//
//	legProb^numLegs = 1/payout  →  legProb = (1/payout)^(1/numLegs)
//
// Ex.: 5 picks pagando 10x → 0.630957... por leg.
func BreakevenProbability(payoutMultiplier float64, numLegs int) float64 {
	return math.Pow(1.0/payoutMultiplier, 1.0/float64(numLegs))
}
