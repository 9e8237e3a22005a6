package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/odds-processor/cache"
	"github.com/villela/pickem-ev-engine/internal/odds-processor/matcher"
	"github.com/villela/pickem-ev-engine/internal/odds-processor/pubsub"
	"github.com/villela/pickem-ev-engine/internal/odds-processor/repository"
	"github.com/villela/pickem-ev-engine/internal/shared/config"
	"github.com/villela/pickem-ev-engine/pkg/contracts/events"
)

// Processor consome batches de quotes do Kafka, roda o matching de EV e
// persiste snapshot + oportunidades no banco
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log         *zap.Logger
	Reader      *kafka.Reader
	Repo        *repository.PostgresRepo
	Cache       *cache.RedisCache
	Broadcaster *pubsub.RedisBroadcaster
	DLQ         *kafka.Writer
	Analysis    config.Analysis

	OnConsumed func()       // métricas (counter++)
	OnMatched  func(int)    // métricas: oportunidades emitidas no batch
	OnPersist  func()       // métricas
	OnError    func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e processamento das mensagens Kafka
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed() // callback de métrica: mensagem consumida
		}

		var batch events.QuoteBatch
		if err := json.Unmarshal(m.Value, &batch); err != nil {
			p.Log.Warn("invalid message", zap.Error(err))
			if p.OnError != nil {
				p.OnError("decode")
			}
			p.sendToDLQ(ctx, m)
			continue
		}

		p.handleBatch(ctx, batch)
	}
}

// handleBatch processa um batch: snapshot, matching, troca de oportunidades,
// invalidação de cache e broadcast. Falha em uma etapa não derruba o loop.
func (p *Processor) handleBatch(ctx context.Context, batch events.QuoteBatch) {
	// 1) snapshot bruto das quotes, para auditoria e hit rate
	if err := p.Repo.InsertSnapshot(ctx, batch); err != nil {
		p.Log.Warn("db snapshot insert failed",
			zap.String("event_id", batch.EventID), zap.Error(err))
		if p.OnError != nil {
			p.OnError("db_snapshot")
		}
		return
	}

	// 2) matching sharp × DFS e cálculo de EV
	res := matcher.FindOpportunities(batch.Quotes, p.Analysis, p.Log)
	if p.OnMatched != nil {
		p.OnMatched(len(res.Opportunities))
	}

	// 3) troca transacional das oportunidades do evento
	if err := p.Repo.ReplaceEventOpportunities(ctx, batch.EventID, res.Opportunities); err != nil {
		p.Log.Warn("db opportunities replace failed",
			zap.String("event_id", batch.EventID), zap.Error(err))
		if p.OnError != nil {
			p.OnError("db_opps")
		}
		return
	}
	if p.OnPersist != nil {
		p.OnPersist() // callback de métrica: persistência concluída
	}

	// 4) invalida o board cacheado do esporte
	if err := p.Cache.InvalidateBoard(ctx, batch.SportKey); err != nil {
		p.Log.Warn("redis invalidate failed", zap.Error(err))
		if p.OnError != nil {
			p.OnError("cache")
		}
		// não bloqueia o broadcast se falhar o cache
	}

	// 5) avisa o dashboard que o board mudou
	p.broadcast(ctx, batch, res.Opportunities)

	p.Log.Info("batch processed",
		zap.String("event_id", batch.EventID),
		zap.String("sport_key", batch.SportKey),
		zap.Int("quotes", len(batch.Quotes)),
		zap.Int("opportunities", len(res.Opportunities)),
	)
}

// broadcast publica o board recomputado do evento no canal pub/sub do WS
func (p *Processor) broadcast(ctx context.Context, batch events.QuoteBatch, opps []matcher.Opportunity) {
	if p.Broadcaster == nil {
		return
	}
	payload, err := json.Marshal(pubsub.WSUpdate{
		SportKey: batch.SportKey,
		EventID:  batch.EventID,
		Payload:  opps,
	})
	if err != nil {
		return
	}
	if err := p.Broadcaster.Publish(ctx, pubsub.ChannelOppsBroadcast, payload); err != nil {
		p.Log.Warn("redis publish failed", zap.Error(err))
		if p.OnError != nil {
			p.OnError("broadcast")
		}
	}
}

// sendToDLQ encaminha a mensagem crua para o tópico de dead letter,
// preservando a chave original
func (p *Processor) sendToDLQ(ctx context.Context, m kafka.Message) {
	if p.DLQ == nil {
		return
	}
	if err := p.DLQ.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value}); err != nil {
		p.Log.Warn("dlq write failed", zap.Error(err))
		if p.OnError != nil {
			p.OnError("dlq")
		}
	}
}

// RunPruner remove periodicamente snapshots e oportunidades fora da retenção
func (p *Processor) RunPruner(ctx context.Context, interval time.Duration) {
	retention := time.Duration(p.Analysis.SnapshotRetentionDays) * 24 * time.Hour
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := p.Repo.PruneSnapshots(ctx, retention); err != nil {
				p.Log.Warn("snapshot prune failed", zap.Error(err))
			} else if n > 0 {
				p.Log.Info("old snapshots pruned", zap.Int64("rows", n))
			}
			if n, err := p.Repo.PruneOpportunities(ctx, retention); err != nil {
				p.Log.Warn("opportunities prune failed", zap.Error(err))
			} else if n > 0 {
				p.Log.Info("stale opportunities pruned", zap.Int64("rows", n))
			}
		}
	}
}
