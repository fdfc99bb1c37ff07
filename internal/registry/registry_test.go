package registry

import (
	"math/rand"
	"testing"
	"time"

	"warehouse-monitor/internal/config"
	"warehouse-monitor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	reg, err := New(config.DefaultSensors(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return reg
}

func TestNew_InitialState(t *testing.T) {
	reg := newTestRegistry(t)

	sensors := reg.Sensors()
	require.Len(t, sensors, 5)

	// 注册顺序保持配置顺序
	assert.Equal(t, "sensor_001", sensors[0].ID)
	assert.Equal(t, "sensor_005", sensors[4].ID)

	for _, s := range sensors {
		assert.True(t, s.IsActive)
		assert.Nil(t, s.LastReading, "last reading must be absent before first tick")
		// 初始展示温度从 [15.0, 25.0] 均匀取值
		assert.GreaterOrEqual(t, s.CurrentTemp, 15.0)
		assert.LessOrEqual(t, s.CurrentTemp, 25.0)
	}
}

func TestNew_InvalidRange(t *testing.T) {
	configs := []config.SensorConfig{
		{ID: "sensor_x", Location: "Somewhere", RangeLow: 10.0, RangeHigh: 5.0},
	}

	_, err := New(configs, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid range")
}

func TestNew_DuplicateID(t *testing.T) {
	configs := []config.SensorConfig{
		{ID: "sensor_x", Location: "A", RangeLow: 1.0, RangeHigh: 5.0},
		{ID: "sensor_x", Location: "B", RangeLow: 1.0, RangeHigh: 5.0},
	}

	_, err := New(configs, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate sensor id")
}

func TestNew_EmptyList(t *testing.T) {
	_, err := New(nil, rand.New(rand.NewSource(1)))
	require.Error(t, err)
}

func TestUpdateLastReading(t *testing.T) {
	reg := newTestRegistry(t)
	ts := time.Now()

	err := reg.UpdateLastReading("sensor_002", 21.4, ts)
	require.NoError(t, err)

	sensors := reg.Sensors()
	require.NotNil(t, sensors[1].LastReading)
	assert.Equal(t, 21.4, sensors[1].LastReading.Temperature)
	assert.Equal(t, ts, sensors[1].LastReading.Timestamp)
	assert.Equal(t, 21.4, sensors[1].CurrentTemp)

	// 其余传感器不受影响
	assert.Nil(t, sensors[0].LastReading)
}

func TestUpdateLastReading_UnknownSensor(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.UpdateLastReading("sensor_999", 21.4, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownSensor)
}

// Sensors 返回快照：修改返回值不影响注册表内部状态
func TestSensors_ReturnsCopies(t *testing.T) {
	reg := newTestRegistry(t)
	require.NoError(t, reg.UpdateLastReading("sensor_001", 5.0, time.Now()))

	sensors := reg.Sensors()
	sensors[0].Location = "mutated"
	sensors[0].LastReading.Temperature = -100.0

	fresh := reg.Sensors()
	assert.Equal(t, "Cold Storage Area", fresh[0].Location)
	assert.Equal(t, 5.0, fresh[0].LastReading.Temperature)
}
