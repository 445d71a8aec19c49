package port

import (
	"context"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// ProductStore owns persistence of tracked products. Upsert must write the
// scalar fields, the recomputed aggregates, and exactly one appended history
// point atomically, and return the record as persisted (including the
// current subscriber set).
type ProductStore interface {
	ListAll(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, url string) (model.Product, error)
	Create(ctx context.Context, p model.Product) error
	Upsert(ctx context.Context, p model.Product, point model.PricePoint) (model.Product, error)
	AddSubscriber(ctx context.Context, url, email string) error
	Ping(ctx context.Context) error
	Close() error
}
