package usecase

import (
	"context"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
)

// ProductUseCase is the read side: product listings, details with history
// and aggregates, and the latest snapshot served cache-first.
type ProductUseCase struct {
	store port.ProductStore
	cache port.SnapshotCache
}

func NewProductUseCase(store port.ProductStore, cache port.SnapshotCache) *ProductUseCase {
	return &ProductUseCase{store: store, cache: cache}
}

func (uc *ProductUseCase) List(ctx context.Context) ([]model.Product, error) {
	return uc.store.ListAll(ctx)
}

func (uc *ProductUseCase) Detail(ctx context.Context, url string) (model.Product, error) {
	return uc.store.Get(ctx, url)
}

// Latest returns the most recent snapshot for a product, preferring the
// cache and falling back to the persisted record.
func (uc *ProductUseCase) Latest(ctx context.Context, url string) (*model.Snapshot, error) {
	if uc.cache != nil {
		snap, err := uc.cache.GetLatest(ctx, url)
		if err == nil && snap != nil {
			return snap, nil
		}
	}

	p, err := uc.store.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	return &model.Snapshot{
		URL:        p.URL,
		Title:      p.Title,
		Price:      p.CurrentPrice,
		Currency:   p.Currency,
		ImageURL:   p.ImageURL,
		OutOfStock: p.OutOfStock,
		FetchedAt:  p.UpdatedAt,
	}, nil
}
