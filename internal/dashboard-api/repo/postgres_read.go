package repo

import (
	"context"
	"database/sql"

	"github.com/villela/pickem-ev-engine/internal/dashboard-api/dto"
	"github.com/villela/pickem-ev-engine/internal/shared/db"
)

type ReadRepo struct {
	DB *sql.DB
}

// Board retorna as oportunidades correntes ranqueadas por EV decrescente,
// no máximo uma por (player, mercado, linha, book DFS) — vence a computação
// de maior EV do grupo. sportKey vazio traz todos os esportes; tabela ainda
// não inicializada retorna vazio.
func (r *ReadRepo) Board(ctx context.Context, sportKey string, limit int) ([]dto.Opportunity, error) {
	const q = `
		SELECT event_id, sport_key, player_name, market, line_value,
		       sharp_over_price, sharp_under_price, fair_win_prob, ev_percentage,
		       dfs_book, sharp_source,
		       to_char(computed_at, 'YYYY-MM-DD"T"HH24:MI:SSZ')
		FROM (
			SELECT DISTINCT ON (player_name, market, line_value, dfs_book) *
			FROM opportunities
			WHERE $1 = '' OR sport_key = $1
			ORDER BY player_name, market, line_value, dfs_book, ev_percentage DESC
		) best
		ORDER BY ev_percentage DESC
		LIMIT $2;
	`
	rows, err := r.DB.QueryContext(ctx, q, sportKey, limit)
	if err != nil {
		if db.IsUndefinedTable(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var out []dto.Opportunity
	for rows.Next() {
		var o dto.Opportunity
		if err := rows.Scan(&o.EventID, &o.SportKey, &o.PlayerName, &o.Market, &o.LineValue,
			&o.SharpOverPrice, &o.SharpUnderPrice, &o.FairWinProb, &o.EVPercentage,
			&o.DFSBook, &o.SharpSource, &o.ComputedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
