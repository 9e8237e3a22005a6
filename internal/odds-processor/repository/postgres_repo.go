package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/villela/pickem-ev-engine/internal/odds-processor/matcher"
	"github.com/villela/pickem-ev-engine/pkg/contracts/events"
)

// PostgresRepo implementa a persistência de snapshots de odds e de
// oportunidades computadas em um banco Postgres
// DB: conexão com o banco de dados
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// InsertSnapshot persiste todas as quotes de um batch na tabela odds_snapshot
// dentro de uma única transação: ou o batch inteiro entra, ou nada entra
func (r *PostgresRepo) InsertSnapshot(ctx context.Context, batch events.QuoteBatch) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO odds_snapshot
		  (event_id, sport_key, bookmaker, market_key, player_name, selection, price, point, fetched_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, qt := range batch.Quotes {
		if _, err := stmt.ExecContext(ctx,
			qt.EventID, qt.SportKey, qt.Bookmaker, qt.MarketKey,
			qt.PlayerName, qt.Selection, qt.Price, qt.Point, qt.FetchedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ReplaceEventOpportunities troca o conjunto de oportunidades de um evento
// pelo recém-computado, em uma transação: leitores nunca veem estado parcial
// entre o delete e os inserts
func (r *PostgresRepo) ReplaceEventOpportunities(ctx context.Context, eventID string, opps []matcher.Opportunity) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM opportunities WHERE event_id = $1`, eventID); err != nil {
		return err
	}

	const q = `
		INSERT INTO opportunities
		  (event_id, sport_key, player_name, market, line_value, sharp_over_price, sharp_under_price,
		   fair_win_prob, ev_percentage, dfs_book, sharp_source, computed_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range opps {
		if _, err := stmt.ExecContext(ctx,
			o.EventID, o.SportKey, o.PlayerName, o.Market, o.LineValue,
			o.SharpOverPrice, o.SharpUnderPrice,
			o.FairWinProb, o.EVPercentage, o.DFSBook, o.SharpSource, o.ComputedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PruneSnapshots remove snapshots mais antigos que a retenção configurada e
// retorna quantas linhas saíram
func (r *PostgresRepo) PruneSnapshots(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := r.DB.ExecContext(ctx, `DELETE FROM odds_snapshot WHERE fetched_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PruneOpportunities remove oportunidades de ciclos antigos que nunca foram
// recomputadas (eventos que saíram da janela de fetch)
func (r *PostgresRepo) PruneOpportunities(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := r.DB.ExecContext(ctx, `DELETE FROM opportunities WHERE computed_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
