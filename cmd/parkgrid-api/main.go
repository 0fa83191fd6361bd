// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"parkgrid/internal/config"
	httptransport "parkgrid/internal/http"
	"parkgrid/internal/infra"
	"parkgrid/internal/logger"
	"parkgrid/internal/modules/billing"
	"parkgrid/internal/modules/lot"
	"parkgrid/internal/modules/parking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DBUrl)
	if err != nil {
		zlog.Fatal("db connect failed", zap.Error(err))
	}
	defer dbPool.Close()

	if err := infra.EnsureSchema(ctx, dbPool); err != nil {
		zlog.Fatal("schema bootstrap failed", zap.Error(err))
	}

	redisClient := infra.NewRedis(cfg.RedisAddr)
	mapCache := lot.NewMapCache(redisClient, time.Duration(cfg.Lot.MapCacheTTLSeconds)*time.Second)

	lotStore := lot.NewStore(dbPool)
	lotSvc := lot.NewService(lotStore, mapCache, cfg.Lot, zlog)

	tariff := billing.TariffFromConfig(cfg.Billing)
	aggregator := billing.NewAggregator(cfg.Billing.TimeAcceleration)
	calculator := billing.NewCalculator(tariff)

	parkingStore := parking.NewStore(dbPool)
	parkingSvc := parking.NewService(parkingStore, aggregator, calculator, mapCache, zlog)

	server := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: httptransport.NewRouter(lotSvc, parkingSvc, zlog),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	zlog.Info("listening", zap.String("addr", cfg.ServerAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("server error", zap.Error(err))
	}
}
