package config

import (
	"fmt"
	"os"
	"strconv"
)

// SensorConfig 单个传感器的模拟配置
type SensorConfig struct {
	ID        string
	Location  string
	RangeLow  float64
	RangeHigh float64
}

// Config 仓库温度监控服务配置
type Config struct {
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Database string
		SSLMode  string
		MaxConns int
		MaxIdle  int
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// 监控循环配置
	Monitor struct {
		// tick 间隔（秒），默认 3 秒
		TickInterval int
		// 告警阈值（生成偏置与评估共用同一份配置，避免两处漂移）
		HighThreshold float64
		LowThreshold  float64
		// 极端值概率，默认 0.3
		ExtremeProbability float64
	}

	API struct {
		Port string
	}

	Log struct {
		Level  string
		Format string
	}

	// 传感器清单（固定配置，启动时校验）
	Sensors []SensorConfig
}

// DefaultSensors 默认的五个仓库传感器
func DefaultSensors() []SensorConfig {
	return []SensorConfig{
		{ID: "sensor_001", Location: "Cold Storage Area", RangeLow: 1.0, RangeHigh: 10.0},
		{ID: "sensor_002", Location: "Loading Dock", RangeLow: 15.0, RangeHigh: 30.0},
		{ID: "sensor_003", Location: "Main Storage Area", RangeLow: 18.0, RangeHigh: 28.0},
		{ID: "sensor_004", Location: "Office Area", RangeLow: 20.0, RangeHigh: 24.0},
		{ID: "sensor_005", Location: "Shipping Department", RangeLow: 16.0, RangeHigh: 26.0},
	}
}

// Load 加载配置（环境变量 + 默认值），并做启动期校验
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "warehouse")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 10)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.Monitor.TickInterval = getEnvInt("MONITOR_TICK_INTERVAL", 3)
	cfg.Monitor.HighThreshold = getEnvFloat("ALERT_THRESHOLD_HIGH", 25.0)
	cfg.Monitor.LowThreshold = getEnvFloat("ALERT_THRESHOLD_LOW", 2.0)
	cfg.Monitor.ExtremeProbability = getEnvFloat("MONITOR_EXTREME_PROBABILITY", 0.3)

	cfg.API.Port = getEnv("API_PORT", "5000")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Sensors = DefaultSensors()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate 校验配置（ConfigurationError：启动即失败，不进入监控循环）
func (c *Config) Validate() error {
	if c.Monitor.TickInterval <= 0 {
		return fmt.Errorf("invalid tick interval: %d", c.Monitor.TickInterval)
	}
	if c.Monitor.LowThreshold >= c.Monitor.HighThreshold {
		return fmt.Errorf("invalid thresholds: low %.1f must be below high %.1f",
			c.Monitor.LowThreshold, c.Monitor.HighThreshold)
	}
	if c.Monitor.ExtremeProbability < 0 || c.Monitor.ExtremeProbability > 1 {
		return fmt.Errorf("invalid extreme probability: %f", c.Monitor.ExtremeProbability)
	}
	if len(c.Sensors) == 0 {
		return fmt.Errorf("sensor list is empty")
	}
	seen := make(map[string]struct{}, len(c.Sensors))
	for _, s := range c.Sensors {
		if s.ID == "" {
			return fmt.Errorf("sensor with empty id")
		}
		if s.Location == "" {
			return fmt.Errorf("sensor %s has empty location", s.ID)
		}
		if s.RangeLow >= s.RangeHigh {
			return fmt.Errorf("sensor %s has invalid range: low %.1f must be below high %.1f",
				s.ID, s.RangeLow, s.RangeHigh)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("duplicate sensor id: %s", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// GetDSN 获取数据库连接字符串
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Database, c.Database.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}
