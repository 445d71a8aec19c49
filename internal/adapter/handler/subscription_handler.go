package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Navneet2569/WebScraper-Bot/internal/application/usecase"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

type SubscriptionHandler struct {
	useCase *usecase.SubscribeUseCase
	logger  *slog.Logger
}

func NewSubscriptionHandler(useCase *usecase.SubscribeUseCase, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		useCase: useCase,
		logger:  logger,
	}
}

type subscribeRequest struct {
	URL   string `json:"url"`
	Email string `json:"email"`
}

// Subscribe serves POST /subscriptions. It tracks the product if it is new
// and registers the email as a subscriber.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}
	if !validEmail(req.Email) {
		http.Error(w, "valid email is required", http.StatusBadRequest)
		return
	}

	p, err := h.useCase.Subscribe(r.Context(), req.URL, req.Email)
	if errors.Is(err, model.ErrSourceUnavailable) {
		h.logger.Warn("subscription failed, product unreachable", "product", req.URL, "error", err)
		http.Error(w, "product could not be fetched", http.StatusBadGateway)
		return
	}
	if err != nil {
		h.logger.Error("subscription failed", "product", req.URL, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1
}
