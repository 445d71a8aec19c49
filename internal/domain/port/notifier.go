package port

import (
	"context"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// Notifier renders and delivers a notification for one product to a list of
// subscriber addresses.
type Notifier interface {
	Send(ctx context.Context, category model.NotificationCategory, info model.ProductInfo, recipients []string) error
}
