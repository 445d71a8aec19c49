package port

import (
	"context"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// SnapshotSource produces the current snapshot for a product URL. The
// mechanics behind a fetch (scraping, upstream APIs) are opaque to the core.
type SnapshotSource interface {
	Fetch(ctx context.Context, url string) (model.Snapshot, error)
	Name() string
}
