package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"unicode/utf8"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
)

// SMTPNotifier renders a notification email per category and delivers it
// over SMTP to every recipient in one message (recipients go on BCC-style
// envelope, the To header names the product watchers collectively).
type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth
	log  *slog.Logger

	// sendMail is swappable for tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(addr, username, password, from string, log *slog.Logger) port.Notifier {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPNotifier{
		addr:     addr,
		from:     from,
		auth:     auth,
		log:      log,
		sendMail: smtp.SendMail,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, category model.NotificationCategory, info model.ProductInfo, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrNotifierFailure, err)
	}

	subject, body := renderEmail(category, info)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	if err := n.sendMail(n.addr, n.auth, n.from, recipients, []byte(msg.String())); err != nil {
		n.log.Error("smtp delivery failed", "product", info.URL, "category", category, "error", err)
		return fmt.Errorf("%w: %v", model.ErrNotifierFailure, err)
	}

	n.log.Info("email sent", "product", info.URL, "category", category, "recipients", len(recipients))
	return nil
}

// renderEmail builds the subject and plain-text body for a category.
func renderEmail(category model.NotificationCategory, info model.ProductInfo) (subject, body string) {
	title := shortenTitle(info.Title)

	switch category {
	case model.CategoryWelcome:
		subject = fmt.Sprintf("Welcome to price tracking for %s", title)
		body = fmt.Sprintf(
			"You are now tracking %s.\n\nWe will let you know when it restocks, hits a record low, or drops in price.\n\n%s\n",
			info.Title, info.URL)
	case model.CategoryStockChange:
		subject = fmt.Sprintf("%s stock status changed", title)
		body = fmt.Sprintf(
			"The availability of %s just changed. Check it before it is gone again.\n\n%s\n",
			info.Title, info.URL)
	case model.CategoryLowestPrice:
		subject = fmt.Sprintf("Lowest price ever for %s", title)
		body = fmt.Sprintf(
			"%s has hit its lowest recorded price. Grab it now.\n\n%s\n",
			info.Title, info.URL)
	case model.CategoryThresholdDrop:
		subject = fmt.Sprintf("Price drop alert for %s", title)
		body = fmt.Sprintf(
			"The price of %s dropped past your alert threshold.\n\n%s\n",
			info.Title, info.URL)
	default:
		subject = fmt.Sprintf("Update for %s", title)
		body = fmt.Sprintf("There is news about %s.\n\n%s\n", info.Title, info.URL)
	}
	return subject, body
}

func shortenTitle(title string) string {
	const max = 40
	if utf8.RuneCountInString(title) <= max {
		return title
	}
	runes := []rune(title)
	return string(runes[:max]) + "..."
}
