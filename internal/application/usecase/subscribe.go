package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/application/service"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
)

// SubscribeUseCase tracks a product for a user. An unknown product is fetched
// once to seed its record with a single-entry history; a known product just
// gains a subscriber. Subscribers are unique by email.
type SubscribeUseCase struct {
	store    port.ProductStore
	source   port.SnapshotSource
	notifier port.Notifier
	logger   *slog.Logger
}

func NewSubscribeUseCase(store port.ProductStore, source port.SnapshotSource, notifier port.Notifier, logger *slog.Logger) *SubscribeUseCase {
	return &SubscribeUseCase{
		store:    store,
		source:   source,
		notifier: notifier,
		logger:   logger,
	}
}

// Subscribe registers email as a watcher of the product at url and returns
// the tracked record. The welcome email is best-effort.
func (uc *SubscribeUseCase) Subscribe(ctx context.Context, url, email string) (model.Product, error) {
	p, err := uc.store.Get(ctx, url)
	switch {
	case errors.Is(err, model.ErrNotFound):
		p, err = uc.track(ctx, url)
		if err != nil {
			return model.Product{}, err
		}
	case err != nil:
		return model.Product{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	if err := uc.store.AddSubscriber(ctx, url, email); err != nil {
		return model.Product{}, fmt.Errorf("%w: add subscriber: %v", model.ErrStoreUnavailable, err)
	}

	if uc.notifier != nil {
		info := model.ProductInfo{Title: p.Title, URL: p.URL}
		if err := uc.notifier.Send(ctx, model.CategoryWelcome, info, []string{email}); err != nil {
			uc.logger.Warn("welcome email failed", "product", url, "error", err)
		}
	}

	return uc.store.Get(ctx, url)
}

// track fetches the first snapshot of a product and persists the initial
// record.
func (uc *SubscribeUseCase) track(ctx context.Context, url string) (model.Product, error) {
	snap, err := uc.source.Fetch(ctx, url)
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: %v", model.ErrSourceUnavailable, err)
	}

	point := model.PricePoint{Price: snap.Price, ObservedAt: time.Now().UTC()}
	stats := service.Aggregate([]model.PricePoint{point})

	p := model.Product{
		URL:          url,
		Title:        snap.Title,
		CurrentPrice: snap.Price,
		Currency:     snap.Currency,
		ImageURL:     snap.ImageURL,
		OutOfStock:   snap.OutOfStock,
		PriceHistory: []model.PricePoint{point},
		LowestPrice:  stats.Lowest,
		HighestPrice: stats.Highest,
		AveragePrice: stats.Average,
	}

	if err := uc.store.Create(ctx, p); err != nil {
		return model.Product{}, fmt.Errorf("%w: create product: %v", model.ErrStoreUnavailable, err)
	}

	uc.logger.Info("product tracked", "product", url, "title", snap.Title, "price", snap.Price)
	return p, nil
}
