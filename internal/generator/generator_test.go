package generator

import (
	"math"
	"math/rand"
	"testing"

	"warehouse-monitor/internal/config"

	"github.com/stretchr/testify/assert"
)

func testSensors() []config.SensorConfig {
	return []config.SensorConfig{
		{ID: "sensor_001", Location: "Cold Storage Area", RangeLow: 1.0, RangeHigh: 10.0},
		{ID: "sensor_004", Location: "Office Area", RangeLow: 20.0, RangeHigh: 24.0},
	}
}

func isRoundedToOneDecimal(t float64) bool {
	return math.Abs(t*10-math.Round(t*10)) < 1e-9
}

func TestGenerate_NormalRangeOnly(t *testing.T) {
	// 极端概率为 0：所有读数都应落在该传感器的正常区间内
	rng := rand.New(rand.NewSource(1))
	gen := New(testSensors(), 0.0, rng)

	for i := 0; i < 1000; i++ {
		temp := gen.Generate("sensor_004")
		assert.GreaterOrEqual(t, temp, 20.0)
		assert.LessOrEqual(t, temp, 24.0)
		assert.True(t, isRoundedToOneDecimal(temp), "temperature %v not rounded to 1 decimal", temp)
	}
}

func TestGenerate_ExtremeRangeOnly(t *testing.T) {
	// 极端概率为 1：所有读数都应落在两个极端区间之一，与正常区间无关
	rng := rand.New(rand.NewSource(2))
	gen := New(testSensors(), 1.0, rng)

	highSeen, lowSeen := false, false
	for i := 0; i < 1000; i++ {
		temp := gen.Generate("sensor_001")
		inHigh := temp >= 26.0 && temp <= 35.0
		inLow := temp >= -5.0 && temp <= 1.0
		assert.True(t, inHigh || inLow, "temperature %v outside extreme ranges", temp)
		assert.True(t, isRoundedToOneDecimal(temp))
		if inHigh {
			highSeen = true
		}
		if inLow {
			lowSeen = true
		}
	}
	assert.True(t, highSeen, "expected at least one high-extreme draw")
	assert.True(t, lowSeen, "expected at least one low-extreme draw")
}

func TestGenerate_MixedProbability(t *testing.T) {
	// 默认 0.3 概率：读数要么在正常区间，要么在极端区间
	rng := rand.New(rand.NewSource(3))
	gen := New(testSensors(), 0.3, rng)

	extremeCount := 0
	const n = 5000
	for i := 0; i < n; i++ {
		temp := gen.Generate("sensor_004")
		inNormal := temp >= 20.0 && temp <= 24.0
		inHigh := temp >= 26.0 && temp <= 35.0
		inLow := temp >= -5.0 && temp <= 1.0
		assert.True(t, inNormal || inHigh || inLow, "temperature %v outside all ranges", temp)
		if inHigh || inLow {
			extremeCount++
		}
	}

	// 极端占比应接近 30%（宽容区间，避免偶发失败）
	ratio := float64(extremeCount) / float64(n)
	assert.InDelta(t, 0.3, ratio, 0.05)
}

func TestGenerate_UnknownSensorUsesFallbackRange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	gen := New(testSensors(), 0.0, rng)

	for i := 0; i < 200; i++ {
		temp := gen.Generate("sensor_999")
		assert.GreaterOrEqual(t, temp, 15.0)
		assert.LessOrEqual(t, temp, 25.0)
	}
}
