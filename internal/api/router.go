package api

import (
	"github.com/gorilla/mux"
)

// NewRouter 组装上报层路由
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/api/temperature/current", h.CurrentTemperatures).Methods("GET")
	r.HandleFunc("/api/temperature/history/{sensor_id}", h.TemperatureHistory).Methods("GET")
	r.HandleFunc("/api/alerts/active", h.ActiveAlerts).Methods("GET")

	return r
}
