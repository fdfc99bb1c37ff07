package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse-monitor/database"
	"warehouse-monitor/internal/cache"
	"warehouse-monitor/internal/config"
	"warehouse-monitor/internal/evaluator"
	"warehouse-monitor/internal/generator"
	"warehouse-monitor/internal/registry"
	"warehouse-monitor/internal/repository"
	"warehouse-monitor/internal/service"
	"warehouse-monitor/logger"
	redispkg "warehouse-monitor/redis"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置（含传感器清单与阈值校验，失败即退出）
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "warehouse-monitor")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting warehouse temperature monitor")

	// 3. 连接数据库（进程级连接池，各Repository共享）
	db, err := database.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. 建表（幂等）
	if err := repository.Schema(ctx, db); err != nil {
		log.Fatal("Failed to apply schema", zap.Error(err))
	}

	// 5. 连接 Redis（最近读数缓存）
	redisClient := redispkg.NewClient(cfg)
	if err := redispkg.Ping(ctx, redisClient); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redispkg.Close(redisClient)

	// 6. 组装组件
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	reg, err := registry.New(cfg.Sensors, rng)
	if err != nil {
		log.Fatal("Failed to initialize sensor registry", zap.Error(err))
	}

	gen := generator.New(cfg.Sensors, cfg.Monitor.ExtremeProbability, rng)
	eval := evaluator.New(cfg.Monitor.HighThreshold, cfg.Monitor.LowThreshold, log)
	readingRepo := repository.NewPostgresReadingRepository(db, log)
	alertRepo := repository.NewPostgresAlertRepository(db, log)
	lastCache := cache.NewLastReadingCache(cache.NewRedisKVStore(redisClient), log)

	monitor := service.NewMonitorService(
		time.Duration(cfg.Monitor.TickInterval)*time.Second,
		reg,
		gen,
		eval,
		readingRepo,
		alertRepo,
		lastCache,
		log,
	)

	// 7. 启动监控循环
	if err := monitor.Start(ctx); err != nil {
		log.Fatal("Failed to start monitoring", zap.Error(err))
	}

	// 8. 等待信号（优雅关闭：等待进行中的 tick 完成）
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	monitor.Stop()
	cancel()

	log.Info("Service stopped")
}
