package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse-monitor/database"
	"warehouse-monitor/internal/api"
	"warehouse-monitor/internal/cache"
	"warehouse-monitor/internal/config"
	"warehouse-monitor/internal/repository"
	"warehouse-monitor/logger"
	redispkg "warehouse-monitor/redis"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "warehouse-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting warehouse reporting API")

	db, err := database.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	readingRepo := repository.NewPostgresReadingRepository(db, log)
	alertRepo := repository.NewPostgresAlertRepository(db, log)

	// Redis 不可用时降级为直接查 Postgres
	var lastCache *cache.LastReadingCache
	redisClient := redispkg.NewClient(cfg)
	if err := redispkg.Ping(context.Background(), redisClient); err != nil {
		log.Warn("Redis unavailable, serving current readings from Postgres", zap.Error(err))
	} else {
		lastCache = cache.NewLastReadingCache(cache.NewRedisKVStore(redisClient), log)
		defer redispkg.Close(redisClient)
	}

	h := api.NewHandlers(cfg.Sensors, readingRepo, alertRepo, lastCache, log)
	router := api.NewRouter(h)

	srv := &http.Server{
		Addr:         ":" + cfg.API.Port,
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Reporting API listening", zap.String("port", cfg.API.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down server", zap.Error(err))
	}

	log.Info("Service stopped")
}
