package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Navneet2569/WebScraper-Bot/internal/application/usecase"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

type ProductHandler struct {
	useCase *usecase.ProductUseCase
	logger  *slog.Logger
}

func NewProductHandler(useCase *usecase.ProductUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// List serves GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.useCase.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

// Detail serves GET /products/detail?url=... with history and aggregates.
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	p, err := h.useCase.Detail(r.Context(), url)
	if errors.Is(err, model.ErrNotFound) {
		http.Error(w, "no data found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", "error", err, "product", url)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Latest serves GET /products/latest?url=..., cache-first.
func (h *ProductHandler) Latest(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	snap, err := h.useCase.Latest(r.Context(), url)
	if errors.Is(err, model.ErrNotFound) {
		http.Error(w, "no data found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get latest snapshot", "error", err, "product", url)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
