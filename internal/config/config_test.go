package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "warehouse", cfg.Database.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	assert.Equal(t, 3, cfg.Monitor.TickInterval)
	assert.Equal(t, 25.0, cfg.Monitor.HighThreshold)
	assert.Equal(t, 2.0, cfg.Monitor.LowThreshold)
	assert.Equal(t, 0.3, cfg.Monitor.ExtremeProbability)

	assert.Equal(t, "5000", cfg.API.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	require.Len(t, cfg.Sensors, 5)
	assert.Equal(t, "sensor_001", cfg.Sensors[0].ID)
	assert.Equal(t, "Cold Storage Area", cfg.Sensors[0].Location)
	assert.Equal(t, 1.0, cfg.Sensors[0].RangeLow)
	assert.Equal(t, 10.0, cfg.Sensors[0].RangeHigh)
	assert.Equal(t, "Shipping Department", cfg.Sensors[4].Location)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("MONITOR_TICK_INTERVAL", "10")
	t.Setenv("ALERT_THRESHOLD_HIGH", "27.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 10, cfg.Monitor.TickInterval)
	assert.Equal(t, 27.5, cfg.Monitor.HighThreshold)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidThresholds(t *testing.T) {
	// 低阈值不得高于或等于高阈值
	t.Setenv("ALERT_THRESHOLD_HIGH", "2.0")
	t.Setenv("ALERT_THRESHOLD_LOW", "25.0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid thresholds")
}

func TestLoad_InvalidTickInterval(t *testing.T) {
	t.Setenv("MONITOR_TICK_INTERVAL", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate_SensorErrors(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Monitor.TickInterval = 3
		cfg.Monitor.HighThreshold = 25.0
		cfg.Monitor.LowThreshold = 2.0
		cfg.Monitor.ExtremeProbability = 0.3
		cfg.Sensors = DefaultSensors()
		return cfg
	}

	t.Run("empty sensor list", func(t *testing.T) {
		cfg := base()
		cfg.Sensors = nil
		require.Error(t, cfg.Validate())
	})

	t.Run("inverted range", func(t *testing.T) {
		cfg := base()
		cfg.Sensors[2].RangeLow = 30.0
		cfg.Sensors[2].RangeHigh = 18.0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid range")
	})

	t.Run("duplicate id", func(t *testing.T) {
		cfg := base()
		cfg.Sensors[1].ID = cfg.Sensors[0].ID
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate sensor id")
	})

	t.Run("missing location", func(t *testing.T) {
		cfg := base()
		cfg.Sensors[0].Location = ""
		require.Error(t, cfg.Validate())
	})
}

func TestGetDSN(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=warehouse")
	assert.Contains(t, dsn, "sslmode=disable")
}
