package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/dashboard-api/dto"
	"github.com/villela/pickem-ev-engine/internal/ledger"
	ledgerrepo "github.com/villela/pickem-ev-engine/internal/ledger/repo"
	"github.com/villela/pickem-ev-engine/pkg/validate"
)

const (
	defaultBoardLimit   = 200
	boardCacheTTL       = 15 * time.Second
	defaultHitRateLimit = 10
)

// getBoard retorna o board de oportunidades, preferencialmente do cache
func (a *API) getBoard(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	limit := defaultBoardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	// só a consulta padrão passa pelo cache; limit customizado vai direto
	// ao banco para não envenenar a chave compartilhada
	if limit == defaultBoardLimit {
		var fromCache []dto.Opportunity
		if ok, _ := a.Cache.GetBoard(r.Context(), sport, &fromCache); ok {
			writeJSON(w, http.StatusOK, fromCache)
			return
		}
	}

	board, err := a.ReadRepo.Board(r.Context(), sport, limit)
	if err != nil {
		a.Log.Warn("board query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if limit == defaultBoardLimit {
		_ = a.Cache.SetBoard(r.Context(), sport, board, boardCacheTTL)
	}
	writeJSON(w, http.StatusOK, board)
}

// createSlip registra um slip multi-leg no ledger
func (a *API) createSlip(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if _, err := validate.Stake(req.Stake); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	legs := make([]ledger.NewLeg, 0, len(req.Legs))
	for _, l := range req.Legs {
		legs = append(legs, ledger.NewLeg{
			Player:    l.Player,
			Market:    l.Market,
			Line:      l.Line,
			Selection: l.Selection,
		})
	}

	id, err := a.Ledger.CreateSlip(r.Context(), req.Book, req.Stake, legs, req.Note)
	if err != nil {
		if errors.Is(err, ledgerrepo.ErrEmptyLegs) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.Log.Warn("slip create failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateSlipResponse{
		SlipID: id,
		Status: ledger.StatusPending,
	})
}

// listSlips retorna todos os slips do mais novo para o mais antigo
func (a *API) listSlips(w http.ResponseWriter, r *http.Request) {
	slips, err := a.Ledger.ListSlips(r.Context())
	if err != nil {
		a.Log.Warn("slip list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]dto.SlipListItem, 0, len(slips))
	for _, s := range slips {
		item := dto.SlipListItem{
			SlipID:     s.ID,
			Book:       s.Book,
			Stake:      s.Stake,
			Payout:     s.Payout,
			Status:     s.Status,
			Note:       s.Note,
			LegCount:   s.LegCount,
			Picks:      s.Picks,
			ProfitLoss: s.ProfitLoss,
			CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
		}
		if s.SettledAt != nil {
			settled := s.SettledAt.UTC().Format(time.RFC3339)
			item.SettledAt = &settled
		}
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, out)
}

// deleteSlip remove um slip e seus legs
func (a *API) deleteSlip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Ledger.DeleteSlip(r.Context(), id); err != nil {
		if errors.Is(err, ledgerrepo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "slip not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"slipId": id, "status": "deleted"})
}

// getLegs retorna os legs de um slip, vazio se o slip não existe
func (a *API) getLegs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	legs, err := a.Ledger.Legs(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]dto.LegResponse, 0, len(legs))
	for _, l := range legs {
		out = append(out, dto.LegResponse{
			LegID:     l.ID,
			Player:    l.Player,
			Market:    l.Market,
			Line:      l.Line,
			Selection: l.Selection,
			Outcome:   l.Outcome,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// settleSlip aplica a liquidação de um slip com o payout real
func (a *API) settleSlip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.SettleSlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if err := a.Ledger.SettleSlip(r.Context(), id, req.Payout); err != nil {
		if errors.Is(err, ledgerrepo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "slip not found")
			return
		}
		a.Log.Warn("slip settle failed", zap.String("slip_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"slipId": id, "status": "settled"})
}

// setLegOutcome grava o resultado individual de um leg
func (a *API) setLegOutcome(w http.ResponseWriter, r *http.Request) {
	legID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "legId must be numeric")
		return
	}

	var req dto.LegOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if err := a.Ledger.SetLegOutcome(r.Context(), legID, req.Outcome); err != nil {
		if errors.Is(err, ledgerrepo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "leg not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logLegacyBet registra uma aposta single no formato legado
func (a *API) logLegacyBet(w http.ResponseWriter, r *http.Request) {
	var req dto.LegacyBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	id, err := a.Ledger.LogLegacyBet(r.Context(), req.Player, req.Market, req.Line, req.Stake, req.Odds)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"betId": id})
}

// settleLegacyBet grava o resultado de uma aposta single legada
func (a *API) settleLegacyBet(w http.ResponseWriter, r *http.Request) {
	betID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "betId must be numeric")
		return
	}

	var req dto.BetResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if err := a.Ledger.SettleLegacyBet(r.Context(), betID, req.Result); err != nil {
		if errors.Is(err, ledgerrepo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "bet not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getAnalytics agrega ROI, win rate e trajetória de bankroll
func (a *API) getAnalytics(w http.ResponseWriter, r *http.Request) {
	an, err := a.Ledger.Analytics(r.Context())
	if err != nil {
		a.Log.Warn("analytics query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.AnalyticsResponse{
		Wins:        an.Wins,
		Losses:      an.Losses,
		Pending:     an.Pending,
		TotalStaked: an.TotalStaked,
		TotalProfit: an.TotalProfit,
		WinRate:     an.WinRate,
		ROI:         an.ROI,
		Bankroll:    an.Bankroll,
	})
}

// getHitRate retorna o histórico binário recente de um jogador em um mercado
func (a *API) getHitRate(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	market := r.URL.Query().Get("market")
	if player == "" || market == "" {
		writeError(w, http.StatusBadRequest, "player and market are required")
		return
	}
	direction := r.URL.Query().Get("direction")

	n := defaultHitRateLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}

	results, err := a.Ledger.HitRate(r.Context(), player, market, direction, n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []int{}
	}
	writeJSON(w, http.StatusOK, dto.HitRateResponse{
		Player:  player,
		Market:  market,
		Results: results,
	})
}
