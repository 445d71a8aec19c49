package notifier

import (
	"context"
	"log/slog"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
)

// LogNotifier records notifications in the log instead of delivering them.
// It stands in for SMTP when no mail host is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) port.Notifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(ctx context.Context, category model.NotificationCategory, info model.ProductInfo, recipients []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, _ := renderEmail(category, info)
	n.log.Info("notification (log only)",
		"category", category,
		"product", info.URL,
		"subject", subject,
		"recipients", len(recipients))
	return nil
}
