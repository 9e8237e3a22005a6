package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/internal/odds-ingest/oddsapi"
	"github.com/villela/pickem-ev-engine/internal/odds-ingest/publisher"
	"github.com/villela/pickem-ev-engine/internal/odds-ingest/service"
	"github.com/villela/pickem-ev-engine/internal/shared/config"
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

	if cfg.OddsAPIKey == "" {
		log.Fatal("ODDS_API_KEY is required")
	}

	// Kafka Publisher
	pub := publisher.NewKafkaPublisher(
		strings.Split(cfg.KafkaBrokers, ","),
		cfg.TopicPropQuotes,
		log,
	)
	defer pub.Close()

	// Cliente da Odds API
	api := oddsapi.NewClient(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, log)

	// Métricas Prometheus do ciclo de ingestão
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_quotes_published_total", Help: "quotes publicadas no Kafka"})
	batches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_batches_published_total", Help: "batches publicados no Kafka"})
	prometheus.MustRegister(published, batches)

	fetcher := &service.Fetcher{
		API:      api,
		Pub:      pub,
		Analysis: config.DefaultAnalysis(),
		Log:      log,
		OnBatch: func(quotes int) {
			batches.Inc()
			published.Add(float64(quotes))
		},
	}

	// Metrics e health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return nil
	})
	defer metricsSrv.Close()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("odds-ingest started",
		zap.Duration("fetch_interval", cfg.FetchInterval),
		zap.String("topic", cfg.TopicPropQuotes))
	fetcher.Run(ctx, cfg.FetchInterval)
	log.Info("odds-ingest stopped")
}
