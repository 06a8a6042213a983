// Package notifier sends download and recovery notices to customers.
// Delivery is best-effort everywhere it is used: the purchase record is the
// source of truth and a lost email is recoverable through the recovery flow.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"gamestore/internal/config"
	"gamestore/internal/model"

	"github.com/rs/zerolog"
)

type Notifier interface {
	SendDownloadNotice(ctx context.Context, record *model.PurchaseRecord) error
	SendRecoveryNotice(ctx context.Context, email string, records []*model.PurchaseRecord) error
	IsConfigured() bool
}

// Select picks the notifier named in config, falling back to console when
// the named provider is missing its credentials.
func Select(cfg *config.Mail, logger zerolog.Logger) Notifier {
	switch cfg.Provider {
	case "resend":
		n := NewResendNotifier(cfg)
		if n.IsConfigured() {
			return n
		}
	case "smtp":
		n := NewSMTPNotifier(cfg)
		if n.IsConfigured() {
			return n
		}
	}
	return NewConsoleNotifier(logger)
}

func downloadSubject(record *model.PurchaseRecord) string {
	return fmt.Sprintf("Your %s download is ready!", record.GameTitle)
}

func downloadBody(record *model.PurchaseRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for buying %s!\n\n", record.GameTitle)
	fmt.Fprintf(&b, "Download your game here:\n%s\n\n", record.DownloadURL)
	fmt.Fprintf(&b, "The link expires on %s and allows up to %d downloads.\n",
		record.DownloadExpires.Format("2 January 2006"), record.MaxDownloads)
	return b.String()
}

func recoverySubject() string {
	return "Your game download links"
}

func recoveryBody(records []*model.PurchaseRecord) string {
	var b strings.Builder
	b.WriteString("Here are your download links:\n\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "- %s (purchased %s)\n  %s\n  expires %s\n\n",
			rec.GameTitle,
			rec.PurchaseDate.Format("2 January 2006"),
			rec.DownloadURL,
			rec.DownloadExpires.Format("2 January 2006 15:04 MST"))
	}
	return b.String()
}

func formatFrom(cfg *config.Mail) string {
	return fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddr)
}
