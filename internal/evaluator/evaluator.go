package evaluator

import (
	"time"

	"warehouse-monitor/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Evaluator 阈值告警评估器
// 高低阈值来自同一份进程级配置（与生成偏置共用，避免两处漂移）
type Evaluator struct {
	highThreshold float64
	lowThreshold  float64
	logger        *zap.Logger
}

// New 创建评估器
func New(highThreshold, lowThreshold float64, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		highThreshold: highThreshold,
		lowThreshold:  lowThreshold,
		logger:        logger,
	}
}

// Evaluate 判定一次读数是否越界，越界则返回告警记录，否则返回 nil
// temperature > high → HIGH_TEMPERATURE；temperature < low → LOW_TEMPERATURE
// 两者由 low < high 保证互斥。命中时输出一条带位置/读数/阈值的告警日志
func (e *Evaluator) Evaluate(sensor domain.Sensor, temperature float64, timestamp time.Time) *domain.Alert {
	var alertType domain.AlertType
	var threshold float64

	switch {
	case temperature > e.highThreshold:
		alertType = domain.AlertHighTemperature
		threshold = e.highThreshold
	case temperature < e.lowThreshold:
		alertType = domain.AlertLowTemperature
		threshold = e.lowThreshold
	default:
		return nil
	}

	e.logger.Warn("Temperature threshold exceeded",
		zap.String("alert_type", string(alertType)),
		zap.String("sensor_id", sensor.ID),
		zap.String("location", sensor.Location),
		zap.Float64("temperature", temperature),
		zap.Float64("threshold", threshold),
	)

	return &domain.Alert{
		AlertID:     uuid.New().String(),
		SensorID:    sensor.ID,
		AlertType:   alertType,
		Temperature: temperature,
		Timestamp:   timestamp,
		Resolved:    false,
	}
}
