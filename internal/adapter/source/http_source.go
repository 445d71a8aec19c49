package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
)

// HTTPSource fetches snapshots from a scrape endpoint that resolves a
// product URL into its current state. The endpoint receives the product URL
// as a query parameter and answers with a JSON snapshot; what it does behind
// that contract (headless browser, upstream API) is its own business.
type HTTPSource struct {
	name     string
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

type rawSnapshot struct {
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	ImageURL   string  `json:"image_url"`
	OutOfStock bool    `json:"out_of_stock"`
}

func NewHTTPSource(name, endpoint string, log *slog.Logger) port.SnapshotSource {
	return &HTTPSource{
		name:     name,
		endpoint: endpoint,
		client:   &http.Client{},
		log:      log,
	}
}

func (s *HTTPSource) Name() string { return s.name }

func (s *HTTPSource) Fetch(ctx context.Context, productURL string) (model.Snapshot, error) {
	reqURL := fmt.Sprintf("%s?url=%s", s.endpoint, url.QueryEscape(productURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: build request: %v", model.ErrSourceUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("snapshot request failed", "source", s.name, "product", productURL, "error", err)
		return model.Snapshot{}, fmt.Errorf("%w: %v", model.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("snapshot request rejected", "source", s.name, "product", productURL, "status", resp.StatusCode)
		return model.Snapshot{}, fmt.Errorf("%w: status %d", model.ErrSourceUnavailable, resp.StatusCode)
	}

	var raw rawSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: decode snapshot: %v", model.ErrSourceUnavailable, err)
	}
	if raw.Price < 0 {
		return model.Snapshot{}, fmt.Errorf("%w: negative price %v", model.ErrSourceUnavailable, raw.Price)
	}

	return model.Snapshot{
		URL:        productURL,
		Title:      raw.Title,
		Price:      raw.Price,
		Currency:   raw.Currency,
		ImageURL:   raw.ImageURL,
		OutOfStock: raw.OutOfStock,
		FetchedAt:  time.Now().UTC(),
	}, nil
}
