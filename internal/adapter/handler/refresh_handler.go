package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// BatchRunner triggers one refresh batch; the handler only relays the call.
type BatchRunner interface {
	Run(ctx context.Context) (model.BatchResult, error)
}

type RefreshHandler struct {
	runner BatchRunner
	logger *slog.Logger
}

func NewRefreshHandler(runner BatchRunner, logger *slog.Logger) *RefreshHandler {
	return &RefreshHandler{
		runner: runner,
		logger: logger,
	}
}

// Trigger serves POST /refresh, running a batch on demand and returning its
// result. A systemic failure (products could not be listed) maps to 503;
// per-product failures ride inside the result body.
func (h *RefreshHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("on-demand refresh requested")

	result, err := h.runner.Run(r.Context())
	if err != nil {
		h.logger.Error("on-demand refresh failed", "error", err)
		http.Error(w, "refresh failed: store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
