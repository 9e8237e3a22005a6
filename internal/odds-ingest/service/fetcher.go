package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/odds-ingest/oddsapi"
	"github.com/villela/pickem-ev-engine/internal/odds-ingest/publisher"
	"github.com/villela/pickem-ev-engine/internal/shared/config"
	"github.com/villela/pickem-ev-engine/pkg/contracts/events"
)

// Fetcher orquestra o ciclo de ingestão: decide quais eventos estão na janela
// de fetch, busca props na Odds API e publica batches validados no Kafka.
// Falhas são isoladas por unidade de trabalho — um evento ou esporte com erro
// não aborta os irmãos.
type Fetcher struct {
	API      *oddsapi.Client
	Pub      *publisher.KafkaPublisher
	Analysis config.Analysis
	Log      *zap.Logger

	// OnBatch é chamado após cada publicação bem-sucedida (métricas)
	OnBatch func(quotes int)
}

// Run executa ciclos de ingestão no intervalo configurado até o contexto encerrar.
func (f *Fetcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// primeiro ciclo imediato
	f.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			f.Log.Info("context canceled, stopping fetcher")
			return
		case <-ticker.C:
			f.RunCycle(ctx)
		}
	}
}

// RunCycle roda um ciclo completo: filtra esportes em temporada, varre os
// eventos dentro da janela e publica um QuoteBatch por evento com props.
// Retorna o total de quotes publicadas no ciclo.
func (f *Fetcher) RunCycle(ctx context.Context) int {
	sports, err := f.API.Sports(ctx)
	if err != nil {
		f.Log.Error("sports catalog fetch failed", zap.Error(err))
		return 0
	}

	target := make(map[string]bool, len(f.Analysis.SportsMap))
	for _, key := range f.Analysis.SportKeys() {
		target[key] = true
	}

	var inSeason []string
	for _, s := range sports {
		if s.Active && target[s.Key] {
			inSeason = append(inSeason, s.Key)
		}
	}
	f.Log.Info("in-season sports resolved", zap.Strings("sports", inSeason))

	if len(inSeason) == 0 {
		return 0
	}

	total := 0
	for _, sportKey := range inSeason {
		if ctx.Err() != nil {
			return total
		}
		total += f.fetchSport(ctx, sportKey)
	}

	// visibilidade de quota a cada ciclo
	if usage, err := f.API.GetUsage(ctx); err == nil {
		f.Log.Info("odds api quota",
			zap.String("remaining", usage.RequestsRemaining),
			zap.String("used", usage.RequestsUsed),
		)
	}

	f.Log.Info("ingest cycle finished", zap.Int("quotes", total))
	return total
}

// fetchSport varre os eventos de um esporte e publica props dos que estão na janela.
func (f *Fetcher) fetchSport(ctx context.Context, sportKey string) int {
	evs, err := f.API.Events(ctx, sportKey)
	if err != nil {
		// erro por esporte é isolado: loga e segue para o próximo
		f.Log.Error("events fetch failed", zap.String("sport", sportKey), zap.Error(err))
		return 0
	}
	if len(evs) == 0 {
		f.Log.Debug("no events for sport", zap.String("sport", sportKey))
		return 0
	}

	bookmakers := append([]string{f.Analysis.SharpBookmaker, f.Analysis.FallbackSharpBookmaker}, f.Analysis.DFSBookmakers...)

	now := time.Now().UTC()
	cutoff := now.Add(time.Duration(f.Analysis.FetchWindowHours) * time.Hour)

	total := 0
	for _, ev := range evs {
		if ctx.Err() != nil {
			return total
		}

		// só jogos que ainda não começaram e começam dentro da janela
		if ev.CommenceTime.Before(now) {
			f.Log.Debug("skipping event already started",
				zap.String("event", ev.AwayTeam+" @ "+ev.HomeTeam))
			continue
		}
		if ev.CommenceTime.After(cutoff) {
			f.Log.Debug("skipping event outside fetch window",
				zap.String("event", ev.AwayTeam+" @ "+ev.HomeTeam),
				zap.Float64("hours_until", ev.CommenceTime.Sub(now).Hours()))
			continue
		}

		fetchedAt := time.Now().UTC()
		raw, err := f.API.PlayerProps(ctx, sportKey, ev.ID, f.Analysis.PropMarkets, bookmakers)
		if err != nil {
			// falha por evento é isolada
			f.Log.Error("props fetch failed",
				zap.String("event", ev.AwayTeam+" @ "+ev.HomeTeam),
				zap.Error(err))
			continue
		}

		quotes := ParsePropsPayload(raw, sportKey, fetchedAt, f.Log)
		if len(quotes) == 0 {
			continue
		}

		batch := events.QuoteBatch{
			EventID:   ev.ID,
			SportKey:  sportKey,
			FetchedAt: fetchedAt,
			Quotes:    quotes,
		}
		if err := f.Pub.Publish(ctx, batch); err != nil {
			f.Log.Error("batch publish failed", zap.String("event_id", ev.ID), zap.Error(err))
			continue
		}

		total += len(quotes)
		if f.OnBatch != nil {
			f.OnBatch(len(quotes))
		}
	}

	return total
}
