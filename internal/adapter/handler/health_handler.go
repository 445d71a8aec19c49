package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
)

type HealthHandler struct {
	storage port.ProductStore
	cache   port.SnapshotCache
	logger  *slog.Logger
}

func NewHealthHandler(storage port.ProductStore, cache port.SnapshotCache, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		cache:   cache,
		logger:  logger,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	dbStatus := "healthy"
	cacheStatus := "healthy"
	overallStatus := "healthy"

	if err := h.storage.Ping(r.Context()); err != nil {
		dbStatus = "unhealthy"
		overallStatus = "degraded"
		h.logger.Warn("database health check failed", "error", err)
	}

	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			cacheStatus = "unhealthy"
			overallStatus = "degraded"
			h.logger.Warn("cache health check failed", "error", err)
		}
	} else {
		cacheStatus = "disabled"
	}

	response := map[string]interface{}{
		"status": overallStatus,
		"checks": map[string]string{
			"database": dbStatus,
			"cache":    cacheStatus,
		},
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
