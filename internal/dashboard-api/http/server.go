package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/dashboard-api/cache"
	"github.com/villela/pickem-ev-engine/internal/dashboard-api/repo"
	"github.com/villela/pickem-ev-engine/internal/dashboard-api/ws"
	ledgerrepo "github.com/villela/pickem-ev-engine/internal/ledger/repo"
)

// API expõe os endpoints REST do dashboard: board de oportunidades e ledger
// de slips. Leitura do board passa pelo cache Redis antes do Postgres.
type API struct {
	Log      *zap.Logger
	ReadRepo *repo.ReadRepo         // acesso de leitura ao banco
	Cache    *cache.Cache           // cache do board
	Ledger   *ledgerrepo.Postgres   // persistência do ledger de slips
	Hub      *ws.Hub                // conexões WebSocket
}

// Router retorna o roteador HTTP com os endpoints REST e o WebSocket
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/v1/opportunities", a.getBoard) // Board ranqueado por EV

	r.Post("/v1/slips", a.createSlip)             // Registra um slip
	r.Get("/v1/slips", a.listSlips)               // Lista slips (mais novo primeiro)
	r.Delete("/v1/slips/{id}", a.deleteSlip)      // Remove slip + legs (cascade)
	r.Get("/v1/slips/{id}/legs", a.getLegs)       // Legs de um slip
	r.Post("/v1/slips/{id}/settle", a.settleSlip) // Liquida um slip
	r.Post("/v1/legs/{id}/outcome", a.setLegOutcome)

	// apostas single no formato legado
	r.Post("/v1/bets", a.logLegacyBet)
	r.Post("/v1/bets/{id}/result", a.settleLegacyBet)

	r.Get("/v1/analytics", a.getAnalytics) // ROI, win rate, bankroll
	r.Get("/v1/hitrate", a.getHitRate)     // Histórico binário por jogador/mercado

	r.Get("/ws", a.Hub.HandleWS)

	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
