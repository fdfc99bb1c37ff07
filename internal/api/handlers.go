package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"warehouse-monitor/internal/cache"
	"warehouse-monitor/internal/config"
	"warehouse-monitor/internal/domain"
	"warehouse-monitor/internal/repository"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// defaultHistoryHours 历史查询默认回溯窗口（小时）
const defaultHistoryHours = 24

// Handlers 上报层只读API
// 只从存储与缓存读取，绝不回写监控循环
type Handlers struct {
	sensors     []config.SensorConfig
	readingRepo repository.ReadingRepository
	alertRepo   repository.AlertRepository
	lastCache   *cache.LastReadingCache
	logger      *zap.Logger
}

// NewHandlers 创建API处理器，lastCache 可为 nil（直接回源 Postgres）
func NewHandlers(
	sensors []config.SensorConfig,
	readingRepo repository.ReadingRepository,
	alertRepo repository.AlertRepository,
	lastCache *cache.LastReadingCache,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sensors:     sensors,
		readingRepo: readingRepo,
		alertRepo:   alertRepo,
		lastCache:   lastCache,
		logger:      logger,
	}
}

// Health 健康检查
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// CurrentTemperatures 每个传感器的最新读数
// 优先读 Redis 缓存（调度器每个 tick 刷新），任一传感器 miss 则整体回源 Postgres
func (h *Handlers) CurrentTemperatures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.lastCache != nil {
		readings := make([]domain.Reading, 0, len(h.sensors))
		hit := true
		for _, s := range h.sensors {
			reading, err := h.lastCache.Get(ctx, s.ID)
			if err != nil {
				hit = false
				break
			}
			readings = append(readings, *reading)
		}
		if hit {
			h.writeJSON(w, readings)
			return
		}
	}

	readings, err := h.readingRepo.Current(ctx)
	if err != nil {
		h.logger.Error("Failed to query current readings", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to query current readings")
		return
	}
	if readings == nil {
		readings = []domain.Reading{}
	}
	h.writeJSON(w, readings)
}

// TemperatureHistory 某传感器的历史读数，?hours=H 控制回溯窗口（默认24）
func (h *Handlers) TemperatureHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sensorID := mux.Vars(r)["sensor_id"]

	hours := defaultHistoryHours
	if v := r.URL.Query().Get("hours"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "invalid hours parameter")
			return
		}
		hours = parsed
	}

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	readings, err := h.readingRepo.History(ctx, sensorID, since)
	if err != nil {
		h.logger.Error("Failed to query reading history",
			zap.String("sensor_id", sensorID),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to query reading history")
		return
	}
	if readings == nil {
		readings = []domain.Reading{}
	}
	h.writeJSON(w, readings)
}

// ActiveAlerts 所有未解决的告警，按时间戳降序
func (h *Handlers) ActiveAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alertRepo.Active(r.Context())
	if err != nil {
		h.logger.Error("Failed to query active alerts", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to query active alerts")
		return
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	h.writeJSON(w, alerts)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
