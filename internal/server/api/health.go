package api

import (
	"context"
	"net/http"
	"time"
)

// HealthResponse — ответ GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health отвечает 200, если база доступна, иначе 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Svc.Health.Check(ctx); err != nil {
		h.Log.Sugar().Warnw("health check failed", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
