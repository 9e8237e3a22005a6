package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// PickSummary monta o resumo abreviado dos picks de um slip: os 3 primeiros
// legs como "Sobrenome O25.5" / "Sobrenome U8.5", com sufixo "+N more" quando
// truncado.
func PickSummary(legs []Leg) string {
	if len(legs) == 0 {
		return ""
	}

	shown := legs
	if len(shown) > 3 {
		shown = shown[:3]
	}

	parts := make([]string, 0, len(shown))
	for _, l := range shown {
		parts = append(parts, fmt.Sprintf("%s %s%s",
			lastName(l.Player), directionAbbrev(l), formatLine(l.Line)))
	}

	summary := strings.Join(parts, ", ")
	if extra := len(legs) - len(shown); extra > 0 {
		summary += fmt.Sprintf(" +%d more", extra)
	}
	return summary
}

// lastName extrai o último token do nome do jogador.
func lastName(player string) string {
	fields := strings.Fields(player)
	if len(fields) == 0 {
		return player
	}
	return fields[len(fields)-1]
}

// directionAbbrev decide O/U a partir do selection, com fallback no sufixo do
// mercado para legs antigos sem selection gravado.
func directionAbbrev(l Leg) string {
	sel := strings.ToLower(l.Selection)
	if sel == "under" || (sel == "" && strings.Contains(strings.ToLower(l.Market), "under")) {
		return "U"
	}
	return "O"
}

// formatLine imprime a linha sem zeros à direita (25.5, não 25.50; 8, não 8.0).
func formatLine(line float64) string {
	return strconv.FormatFloat(line, 'f', -1, 64)
}
