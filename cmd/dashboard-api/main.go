package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	dashcache "github.com/villela/pickem-ev-engine/internal/dashboard-api/cache"
	httpapi "github.com/villela/pickem-ev-engine/internal/dashboard-api/http"
	"github.com/villela/pickem-ev-engine/internal/dashboard-api/repo"
	"github.com/villela/pickem-ev-engine/internal/dashboard-api/ws"
	ledgerrepo "github.com/villela/pickem-ev-engine/internal/ledger/repo"
	sharedcache "github.com/villela/pickem-ev-engine/internal/shared/cache"
	"github.com/villela/pickem-ev-engine/internal/shared/config"
	"github.com/villela/pickem-ev-engine/internal/shared/db"
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

	// Hub WebSocket alimentado pelo Redis Pub/Sub do processor
	hub := ws.NewHub(func(r *http.Request) bool { return true })

	api := &httpapi.API{
		Log:      log,
		ReadRepo: &repo.ReadRepo{DB: pg},
		Cache:    dashcache.New(redisClient),
		Ledger:   ledgerrepo.NewPostgres(pg, log),
		Hub:      hub,
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

	ws.StartRedisSubscriber(ctx, redisClient, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}
	go func() {
		log.Info("dashboard-api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("dashboard-api stopped")
}
