package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sabogal22/Sistema-de-inventario/internal/config"
	"github.com/Sabogal22/Sistema-de-inventario/internal/infra"
	"github.com/Sabogal22/Sistema-de-inventario/internal/repository"
	"github.com/Sabogal22/Sistema-de-inventario/internal/router"
	"github.com/Sabogal22/Sistema-de-inventario/internal/service"
	"github.com/Sabogal22/Sistema-de-inventario/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger. Dev: pretty console, prod: JSON.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Seed the fixed administrative status labels on boot (idempotent)
	statusRepo := repository.NewStatusRepository(db)
	catalogSvc := service.NewCatalogService(
		repository.NewCategoryRepository(db),
		repository.NewLocationRepository(db),
		statusRepo,
	)
	if err := catalogSvc.SeedStatuses(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed statuses")
	}

	// Goroutine worker pool for async email alerts. Handlers are wired here
	// (composition root) so the pool has full access to infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	workerHandlers := &worker.Handlers{
		LowStockEmail: worker.NewLowStockEmailWorker(mailer),
	}
	worker.StartPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, mailer)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("inventory backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
