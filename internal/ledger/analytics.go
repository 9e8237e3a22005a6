package ledger

// BankrollBaseline é o ponto de partida da trajetória de bankroll.
const BankrollBaseline = 100.0

// ComputeAnalytics agrega as métricas de desempenho sobre os slips, que devem
// chegar em ordem cronológica de criação (a trajetória de bankroll depende da
// ordem). Slips Pending entram só na contagem; Partial conta como derrota no
// win rate porque devolveu menos que o stake.
func ComputeAnalytics(slips []Slip) Analytics {
	a := Analytics{
		Bankroll: []float64{BankrollBaseline},
	}

	running := BankrollBaseline
	for _, s := range slips {
		if !isSettled(s.Status) {
			a.Pending++
			continue
		}

		a.TotalStaked += s.Stake

		if pl := ProfitLoss(s); pl != nil {
			a.TotalProfit += *pl
			running += *pl
		}
		// Push entra na trajetória com o valor inalterado
		a.Bankroll = append(a.Bankroll, running)

		if isWin(s.Status) {
			a.Wins++
		} else if isLoss(s.Status) {
			a.Losses++
		}
	}

	if settled := a.Wins + a.Losses; settled > 0 {
		a.WinRate = float64(a.Wins) / float64(settled) * 100
	}
	if a.TotalStaked > 0 {
		a.ROI = a.TotalProfit / a.TotalStaked * 100
	}
	return a
}
