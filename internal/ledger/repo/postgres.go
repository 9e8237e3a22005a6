// Package repo implementa a persistência do ledger de slips em Postgres.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/ledger"
	"github.com/villela/pickem-ev-engine/internal/shared/db"
	"github.com/villela/pickem-ev-engine/pkg/validate"
)

// Postgres implementa as operações de slip em banco Postgres
type Postgres struct {
	db  *sql.DB
	log *zap.Logger
}

// NewPostgres retorna uma instância do repositório de slips
func NewPostgres(d *sql.DB, log *zap.Logger) *Postgres {
	return &Postgres{db: d, log: log}
}

var (
	ErrNotFound  = errors.New("slip not found")
	ErrEmptyLegs = errors.New("slip must have at least one leg")
)

// CreateSlip insere um slip e seus legs atomicamente: ou tudo entra, ou nada
// entra (falha no meio desfaz inclusive a linha do slip). Stake não positivo
// ou lista de legs vazia é erro de regra de negócio; leg individual malformado
// dentro de uma lista válida é pulado com warn, não aborta a criação.
func (p *Postgres) CreateSlip(ctx context.Context, book string, stake float64, legs []ledger.NewLeg, note string) (string, error) {
	if _, err := validate.Stake(stake); err != nil {
		return "", err
	}
	if len(legs) == 0 {
		return "", ErrEmptyLegs
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO slips (id, book, stake, payout, status, note)
		VALUES ($1,$2,$3,0,$4,$5)`,
		id, book, stake, ledger.StatusPending, note,
	); err != nil {
		return "", err
	}

	inserted := 0
	for _, l := range legs {
		if l.Player == "" || l.Market == "" {
			p.log.Warn("malformed leg skipped",
				zap.String("slip_id", id),
				zap.String("player", l.Player),
				zap.String("market", l.Market))
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO slip_legs (slip_id, player_name, market, line_value, selection)
			VALUES ($1,$2,$3,$4,$5)`,
			id, l.Player, l.Market, l.Line, l.Selection,
		); err != nil {
			return "", err
		}
		inserted++
	}
	if inserted == 0 {
		return "", ErrEmptyLegs
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// SettleSlip aplica a máquina de estados de liquidação e persiste status e
// payout. Payout negativo é clampado em 0 com diagnóstico. Idempotente:
// liquidar de novo sobrescreve.
func (p *Postgres) SettleSlip(ctx context.Context, slipID string, payout float64) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var stake float64
	err = tx.QueryRowContext(ctx, `SELECT stake FROM slips WHERE id=$1 FOR UPDATE`, slipID).Scan(&stake)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if payout < 0 {
		p.log.Warn("negative payout clamped to zero",
			zap.String("slip_id", slipID), zap.Float64("payout", payout))
	}
	status, payout := ledger.StatusForPayout(stake, payout)

	if _, err := tx.ExecContext(ctx, `
		UPDATE slips SET status=$1, payout=$2, settled_at=NOW() WHERE id=$3`,
		status, payout, slipID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Legs retorna todos os legs de um slip, vazio se o slip não existe ou não
// tem legs
func (p *Postgres) Legs(ctx context.Context, slipID string) ([]ledger.Leg, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, slip_id, player_name, market, line_value, selection, COALESCE(outcome,''), created_at
		FROM slip_legs WHERE slip_id=$1 ORDER BY id`, slipID)
	if err != nil {
		if db.IsUndefinedTable(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var legs []ledger.Leg
	for rows.Next() {
		var l ledger.Leg
		if err := rows.Scan(&l.ID, &l.SlipID, &l.Player, &l.Market, &l.Line, &l.Selection, &l.Outcome, &l.CreatedAt); err != nil {
			return nil, err
		}
		legs = append(legs, l)
	}
	return legs, rows.Err()
}

// SetLegOutcome grava o resultado individual de um leg, alimentando as
// consultas históricas de hit rate
func (p *Postgres) SetLegOutcome(ctx context.Context, legID int64, outcome string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE slip_legs SET outcome=$1 WHERE id=$2`, outcome, legID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSlip remove um slip; os legs caem junto pelo cascade da FK
func (p *Postgres) DeleteSlip(ctx context.Context, slipID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM slips WHERE id=$1`, slipID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSlips retorna todos os slips do mais novo para o mais antigo, anotados
// com contagem de legs, resumo de picks e P/L derivado
func (p *Postgres) ListSlips(ctx context.Context) ([]ledger.SlipSummary, error) {
	slips, err := p.slipsOrdered(ctx, "DESC")
	if err != nil {
		return nil, err
	}

	summaries := make([]ledger.SlipSummary, 0, len(slips))
	for _, s := range slips {
		legs, err := p.Legs(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ledger.SlipSummary{
			Slip:       s,
			LegCount:   len(legs),
			Picks:      ledger.PickSummary(legs),
			ProfitLoss: ledger.ProfitLoss(s),
		})
	}
	return summaries, nil
}

// Analytics agrega as métricas de desempenho sobre todos os slips, em ordem
// cronológica (exigida pela trajetória de bankroll)
func (p *Postgres) Analytics(ctx context.Context) (ledger.Analytics, error) {
	slips, err := p.slipsOrdered(ctx, "ASC")
	if err != nil {
		return ledger.Analytics{}, err
	}
	return ledger.ComputeAnalytics(slips), nil
}

// slipsOrdered lê todos os slips ordenados por criação. Tabela inexistente
// (banco recém-criado) retorna vazio em vez de erro.
func (p *Postgres) slipsOrdered(ctx context.Context, dir string) ([]ledger.Slip, error) {
	order := "ASC"
	if dir == "DESC" {
		order = "DESC"
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, book, stake, payout, status, COALESCE(note,''), created_at, settled_at
		FROM slips ORDER BY created_at `+order)
	if err != nil {
		if db.IsUndefinedTable(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var slips []ledger.Slip
	for rows.Next() {
		var s ledger.Slip
		if err := rows.Scan(&s.ID, &s.Book, &s.Stake, &s.Payout, &s.Status, &s.Note, &s.CreatedAt, &s.SettledAt); err != nil {
			return nil, err
		}
		slips = append(slips, s)
	}
	return slips, rows.Err()
}

// LogLegacyBet registra uma aposta single no formato legado (planilha antiga)
func (p *Postgres) LogLegacyBet(ctx context.Context, player, market string, line, stake float64, odds int) (int64, error) {
	if _, err := validate.Stake(stake); err != nil {
		return 0, err
	}
	if _, err := validate.AmericanOdds(odds); err != nil {
		return 0, err
	}

	var id int64
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO placed_bets (player_name, market, line_value, stake, odds)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		player, market, line, stake, odds).Scan(&id)
	return id, err
}

// SettleLegacyBet grava o resultado de uma aposta single legada
func (p *Postgres) SettleLegacyBet(ctx context.Context, betID int64, result string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE placed_bets SET result=$1 WHERE id=$2`, result, betID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// HitRate retorna os últimos n resultados binários (1=acertou, 0=errou) de um
// jogador em um mercado, do mais recente para o mais antigo. A direção pode
// vir explícita ("over"/"under") ou é inferida por substring do mercado;
// outcome com texto não reconhecido é pulado, não contado como erro.
func (p *Postgres) HitRate(ctx context.Context, player, market, direction string, n int) ([]int, error) {
	if direction == "" {
		lower := strings.ToLower(market)
		switch {
		case strings.Contains(lower, "under"):
			direction = "under"
		case strings.Contains(lower, "over"):
			direction = "over"
		}
	}

	// legs de slips mais registros single legados (placed_bets), misturados
	// por data
	rows, err := p.db.QueryContext(ctx, `
		SELECT outcome FROM (
			SELECT l.outcome AS outcome, s.created_at AS created_at
			FROM slip_legs l
			JOIN slips s ON s.id = l.slip_id
			WHERE l.player_name = $1
			  AND l.market LIKE '%' || $2 || '%'
			  AND ($3 = '' OR LOWER(l.market) LIKE '%' || $3 || '%' OR LOWER(l.selection) = $3)
			  AND l.outcome IS NOT NULL AND l.outcome <> ''
			UNION ALL
			SELECT b.result AS outcome, b.created_at AS created_at
			FROM placed_bets b
			WHERE b.player_name = $1
			  AND b.market LIKE '%' || $2 || '%'
			  AND ($3 = '' OR LOWER(b.market) LIKE '%' || $3 || '%')
			  AND b.result IS NOT NULL AND b.result <> ''
		) combined
		ORDER BY created_at DESC
		LIMIT $4`,
		player, market, strings.ToLower(direction), n)
	if err != nil {
		if db.IsUndefinedTable(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var results []int
	for rows.Next() {
		var outcome string
		if err := rows.Scan(&outcome); err != nil {
			return nil, err
		}
		hit, ok := ledger.RecognizeOutcome(outcome)
		if !ok {
			continue
		}
		if hit {
			results = append(results, 1)
		} else {
			results = append(results, 0)
		}
	}
	return results, rows.Err()
}
