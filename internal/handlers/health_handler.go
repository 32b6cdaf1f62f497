package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
)

// PingFunc reports whether the database is reachable.
type PingFunc func(ctx context.Context) error

// HealthHandler reports service liveness together with database reachability.
type HealthHandler struct {
	Ping PingFunc
}

func NewHealthHandler(ping PingFunc) *HealthHandler {
	return &HealthHandler{Ping: ping}
}

func (h *HealthHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Ping != nil {
		if err := h.Ping(ctx); err != nil {
			logger.Log.WithError(err).Error("Health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
