package ledger

import "strings"

// StatusForPayout aplica a máquina de estados de liquidação dado o stake do
// slip e o payout informado. Payout negativo é clampado em 0 (vira Lost);
// o payout efetivamente persistido é o segundo retorno.
func StatusForPayout(stake, payout float64) (string, float64) {
	if payout < 0 {
		payout = 0
	}
	switch {
	case payout > stake:
		return StatusProfit, payout
	case payout == stake:
		return StatusPush, payout
	case payout > 0:
		return StatusPartial, payout
	default:
		return StatusLost, payout
	}
}

// ProfitLoss deriva o P/L de um slip a partir do status. Retorna nil para
// Pending ou status não reconhecido — o chamador exibe como desconhecido,
// não como zero.
func ProfitLoss(s Slip) *float64 {
	var pl float64
	switch s.Status {
	case StatusProfit, StatusWon:
		pl = s.Payout - s.Stake
	case StatusPartial:
		pl = s.Payout - s.Stake
	case StatusPush:
		pl = 0
	case StatusLost:
		pl = -s.Stake
	default:
		return nil
	}
	return &pl
}

// isWin e isLoss classificam status para win rate: Partial conta como
// derrota (devolveu menos que o stake).
func isWin(status string) bool {
	return status == StatusProfit || status == StatusWon
}

func isLoss(status string) bool {
	return status == StatusLost || status == StatusPartial
}

func isSettled(status string) bool {
	return isWin(status) || isLoss(status) || status == StatusPush
}

// RecognizeOutcome interpreta o texto livre de outcome de um leg como
// acerto (1) ou erro (0). Texto não reconhecido retorna ok=false e é
// pulado pelas consultas de hit rate, nunca contado como erro.
func RecognizeOutcome(text string) (hit bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "win", "won", "hit", "w", "1":
		return true, true
	case "loss", "lost", "miss", "l", "0":
		return false, true
	default:
		return false, false
	}
}
