package domain

import "time"

// AlertType 告警类型
type AlertType string

const (
	AlertHighTemperature AlertType = "HIGH_TEMPERATURE"
	AlertLowTemperature  AlertType = "LOW_TEMPERATURE"
)

// LastReading 传感器最近一次读数（首个 tick 之前为空）
type LastReading struct {
	Temperature float64   `json:"temperature"`
	Timestamp   time.Time `json:"timestamp"`
}

// Sensor 仓库温度传感器（由 Registry 独占管理）
type Sensor struct {
	ID          string       `json:"sensor_id"`
	Location    string       `json:"location"`
	RangeLow    float64      `json:"range_low"`
	RangeHigh   float64      `json:"range_high"`
	IsActive    bool         `json:"is_active"`
	CurrentTemp float64      `json:"current_temp"`
	LastReading *LastReading `json:"last_reading,omitempty"`
}

// Reading 一次温度观测（不可变，追加写入）
type Reading struct {
	SensorID    string    `json:"sensor_id"`
	Temperature float64   `json:"temperature"`
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location"`
}

// Alert 阈值越界告警记录
type Alert struct {
	AlertID     string    `json:"alert_id"`
	SensorID    string    `json:"sensor_id"`
	AlertType   AlertType `json:"alert_type"`
	Temperature float64   `json:"temperature"`
	Timestamp   time.Time `json:"timestamp"`
	Resolved    bool      `json:"resolved"`
}
