package port

import (
	"context"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// SnapshotCache keeps the most recent snapshot per product for cheap reads.
// It is best-effort: the pipeline treats cache errors as non-fatal.
type SnapshotCache interface {
	SetLatest(ctx context.Context, snap model.Snapshot) error
	GetLatest(ctx context.Context, url string) (*model.Snapshot, error)
	Ping(ctx context.Context) error
	Close() error
}
