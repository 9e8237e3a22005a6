package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/odds-processor/cache"
	"github.com/villela/pickem-ev-engine/internal/odds-processor/consumer"
	"github.com/villela/pickem-ev-engine/internal/odds-processor/pubsub"
	"github.com/villela/pickem-ev-engine/internal/odds-processor/repository"
	sharedcache "github.com/villela/pickem-ev-engine/internal/shared/cache"
	"github.com/villela/pickem-ev-engine/internal/shared/config"
	"github.com/villela/pickem-ev-engine/internal/shared/db"
	sharedkafka "github.com/villela/pickem-ev-engine/internal/shared/kafka"
	"github.com/villela/pickem-ev-engine/internal/shared/logger"
	"github.com/villela/pickem-ev-engine/internal/shared/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	rcache := cache.NewRedisCache(redisClient)
	repo := repository.NewPostgresRepo(pg)

	// Consumer Kafka (consumer group odds-processor)
	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicPropQuotes, "odds-processor")
	defer reader.Close()

	// DLQ para batches que não desserializam
	dlq := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicPropQuotesDLQ)
	defer dlq.Close()

	// Métricas Prometheus para monitoramento do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "odds_proc_batches_consumed_total", Help: "batches consumidos"})
	matched := prometheus.NewCounter(prometheus.CounterOpts{Name: "odds_proc_opportunities_total", Help: "oportunidades emitidas"})
	persist := prometheus.NewCounter(prometheus.CounterOpts{Name: "odds_proc_db_writes_total", Help: "escritas no banco (snapshot+opps)"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "odds_proc_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, matched, persist, errorsBy)

	// Broadcaster para publicar boards recomputados no Redis Pub/Sub (usado pelo dashboard-api/ws)
	broadcaster := pubsub.NewRedisBroadcaster(redisClient)

	// Instancia o processor, conectando callbacks de métricas e broadcast
	proc := &consumer.Processor{
		Log:         log,
		Reader:      reader,
		Repo:        repo,
		Cache:       rcache,
		Broadcaster: broadcaster,
		DLQ:         dlq,
		Analysis:    config.DefaultAnalysis(),
		OnConsumed:  func() { consumed.Inc() },
		OnMatched:   func(n int) { matched.Add(float64(n)) },
		OnPersist:   func() { persist.Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Servidor HTTP para métricas e health check
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})
	defer metricsSrv.Close()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Prune periódico de snapshots e oportunidades fora da retenção
	go proc.RunPruner(ctx, time.Hour)

	log.Info("odds-processor started")
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("odds-processor stopped")
}
