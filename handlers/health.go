package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type HealthHandler struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewHealthHandler(db *sqlx.DB, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := map[string]interface{}{
		"status":    "ok",
		"service":   "school-backend",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn("health check: database ping failed", zap.Error(err))
		response["status"] = "unavailable"
		response["database"] = "down"
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response["database"] = "up"
	writeJSON(w, http.StatusOK, response)
}
