package generator

import (
	"math"
	"math/rand"

	"warehouse-monitor/internal/config"
)

// 极端值区间（压测偏置，保证演示期间周期性触发告警，不是真实传感器模型）
const (
	extremeHighMin = 26.0
	extremeHighMax = 35.0
	extremeLowMin  = -5.0
	extremeLowMax  = 1.0
)

// 未配置区间的传感器使用的兜底区间
const (
	fallbackLow  = 15.0
	fallbackHigh = 25.0
)

type sensorRange struct {
	low  float64
	high float64
}

// Generator 合成温度生成器
// 每次调用相互独立，tick 之间不做平滑（已知的刻意简化）
type Generator struct {
	rng                *rand.Rand
	ranges             map[string]sensorRange
	extremeProbability float64
}

// New 创建生成器，随机源由调用方注入以便测试
func New(sensors []config.SensorConfig, extremeProbability float64, rng *rand.Rand) *Generator {
	ranges := make(map[string]sensorRange, len(sensors))
	for _, s := range sensors {
		ranges[s.ID] = sensorRange{low: s.RangeLow, high: s.RangeHigh}
	}
	return &Generator{
		rng:                rng,
		ranges:             ranges,
		extremeProbability: extremeProbability,
	}
}

// Generate 为指定传感器生成一个温度读数（保留一位小数）
// 正常情况下从该传感器的配置区间均匀取值；以 extremeProbability 的概率
// 改为从极端区间取值（高低各半），与传感器自身区间无关
func (g *Generator) Generate(sensorID string) float64 {
	r, ok := g.ranges[sensorID]
	if !ok {
		r = sensorRange{low: fallbackLow, high: fallbackHigh}
	}

	temperature := g.uniform(r.low, r.high)

	if g.rng.Float64() < g.extremeProbability {
		if g.rng.Float64() < 0.5 {
			temperature = g.uniform(extremeHighMin, extremeHighMax)
		} else {
			temperature = g.uniform(extremeLowMin, extremeLowMax)
		}
	}

	return math.Round(temperature*10) / 10
}

func (g *Generator) uniform(low, high float64) float64 {
	return low + g.rng.Float64()*(high-low)
}
