package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"warehouse-monitor/internal/cache"
	"warehouse-monitor/internal/domain"
	"warehouse-monitor/internal/evaluator"
	"warehouse-monitor/internal/registry"
	"warehouse-monitor/internal/repository"

	"go.uber.org/zap"
)

// TemperatureSource 温度读数来源（生产环境为合成生成器，测试中可替换）
type TemperatureSource interface {
	Generate(sensorID string) float64
}

// MonitorService 温度监控服务
// 持有 tick 调度循环：生成 → 写读数 → 评估告警 → 写告警 → 更新注册表 → 刷缓存
// 状态机 Stopped → Running → Stopped，Start/Stop 均幂等
type MonitorService struct {
	interval    time.Duration
	registry    *registry.Registry
	source      TemperatureSource
	evaluator   *evaluator.Evaluator
	readingRepo repository.ReadingRepository
	alertRepo   repository.AlertRepository
	lastCache   *cache.LastReadingCache
	logger      *zap.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewMonitorService 创建监控服务（依赖由进程入口组装后注入）
func NewMonitorService(
	interval time.Duration,
	reg *registry.Registry,
	source TemperatureSource,
	eval *evaluator.Evaluator,
	readingRepo repository.ReadingRepository,
	alertRepo repository.AlertRepository,
	lastCache *cache.LastReadingCache,
	logger *zap.Logger,
) *MonitorService {
	return &MonitorService{
		interval:    interval,
		registry:    reg,
		source:      source,
		evaluator:   eval,
		readingRepo: readingRepo,
		alertRepo:   alertRepo,
		lastCache:   lastCache,
		logger:      logger,
	}
}

// Start 启动监控循环
// 已在运行时再次调用不会产生第二条并发的 tick 流
func (s *MonitorService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn("Monitor already running, ignoring start")
		return nil
	}

	s.running = true
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.run(ctx, s.stopCh)

	s.logger.Info("Monitoring started",
		zap.Duration("tick_interval", s.interval),
		zap.Int("sensor_count", len(s.registry.Sensors())),
	)
	return nil
}

// Stop 停止监控循环
// 协作式取消：停止信号在 tick 之间检查，进行中的 tick 会先完成；重复调用为空操作
func (s *MonitorService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Monitoring stopped")
}

// Running 当前是否在运行
func (s *MonitorService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// run 后台 worker：立即执行首个 tick，之后按固定间隔触发
func (s *MonitorService) run(ctx context.Context, stopCh <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick 按注册顺序处理每个传感器，单个传感器的写入失败不影响其余传感器
func (s *MonitorService) tick(ctx context.Context) {
	now := time.Now()
	successCount := 0
	errorCount := 0

	for _, sensor := range s.registry.Sensors() {
		temperature := s.source.Generate(sensor.ID)

		reading := domain.Reading{
			SensorID:    sensor.ID,
			Temperature: temperature,
			Timestamp:   now,
			Location:    sensor.Location,
		}

		if err := s.readingRepo.Append(ctx, reading); err != nil {
			s.logger.Error("Failed to store reading",
				zap.String("sensor_id", sensor.ID),
				zap.Float64("temperature", temperature),
				zap.Error(err),
			)
			errorCount++
			continue
		}

		if alert := s.evaluator.Evaluate(sensor, temperature, now); alert != nil {
			if err := s.alertRepo.Append(ctx, *alert); err != nil {
				s.logger.Error("Failed to store alert",
					zap.String("sensor_id", sensor.ID),
					zap.String("alert_type", string(alert.AlertType)),
					zap.Error(err),
				)
				errorCount++
				// 读数已落库，继续更新注册表
			}
		}

		if err := s.registry.UpdateLastReading(sensor.ID, temperature, now); err != nil {
			if errors.Is(err, domain.ErrUnknownSensor) {
				// 只可能是核心逻辑缺陷：开发配置下 panic，生产配置下记录错误
				s.logger.DPanic("Registry update for unknown sensor",
					zap.String("sensor_id", sensor.ID),
					zap.Error(err),
				)
			} else {
				s.logger.Error("Failed to update registry",
					zap.String("sensor_id", sensor.ID),
					zap.Error(err),
				)
			}
			errorCount++
			continue
		}

		if s.lastCache != nil {
			if err := s.lastCache.Set(ctx, reading); err != nil {
				s.logger.Warn("Failed to update last reading cache",
					zap.String("sensor_id", sensor.ID),
					zap.Error(err),
				)
			}
		}

		successCount++
	}

	s.logger.Debug("Tick completed",
		zap.Int("success_count", successCount),
		zap.Int("error_count", errorCount),
		zap.Duration("elapsed", time.Since(now).Round(time.Millisecond)),
	)
}
