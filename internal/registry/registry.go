package registry

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"warehouse-monitor/internal/config"
	"warehouse-monitor/internal/domain"
)

// Registry 传感器注册表（内存目录，持有每个传感器的最近读数缓存）
// 写入只来自调度器；上报层并发读取，允许落后至多一个 tick
type Registry struct {
	mu      sync.RWMutex
	order   []string
	sensors map[string]*domain.Sensor
}

// New 根据固定配置清单创建注册表
// current_temp 从 [15.0, 25.0] 均匀取一个初始展示值，last_reading 在首个 tick 前为空
func New(configs []config.SensorConfig, rng *rand.Rand) (*Registry, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("sensor list is empty")
	}

	r := &Registry{
		order:   make([]string, 0, len(configs)),
		sensors: make(map[string]*domain.Sensor, len(configs)),
	}

	for _, c := range configs {
		if c.ID == "" || c.Location == "" {
			return nil, fmt.Errorf("sensor config missing id or location")
		}
		if c.RangeLow >= c.RangeHigh {
			return nil, fmt.Errorf("sensor %s has invalid range: low %.1f must be below high %.1f",
				c.ID, c.RangeLow, c.RangeHigh)
		}
		if _, ok := r.sensors[c.ID]; ok {
			return nil, fmt.Errorf("duplicate sensor id: %s", c.ID)
		}

		r.order = append(r.order, c.ID)
		r.sensors[c.ID] = &domain.Sensor{
			ID:          c.ID,
			Location:    c.Location,
			RangeLow:    c.RangeLow,
			RangeHigh:   c.RangeHigh,
			IsActive:    true,
			CurrentTemp: 15.0 + rng.Float64()*10.0,
		}
	}

	return r, nil
}

// UpdateLastReading 更新传感器的最近读数
// 未注册的ID属于调用方逻辑缺陷，返回 domain.ErrUnknownSensor 由调用方升级处理
func (r *Registry) UpdateLastReading(sensorID string, temperature float64, timestamp time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sensors[sensorID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSensor, sensorID)
	}

	s.CurrentTemp = temperature
	s.LastReading = &domain.LastReading{
		Temperature: temperature,
		Timestamp:   timestamp,
	}
	return nil
}

// Sensors 按注册顺序返回传感器快照
func (r *Registry) Sensors() []domain.Sensor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Sensor, 0, len(r.order))
	for _, id := range r.order {
		s := *r.sensors[id]
		if s.LastReading != nil {
			lr := *s.LastReading
			s.LastReading = &lr
		}
		out = append(out, s)
	}
	return out
}
