package notifier

import (
	"context"

	"gamestore/internal/model"

	"github.com/rs/zerolog"
)

// consoleNotifier logs instead of sending. Development default.
type consoleNotifier struct {
	logger zerolog.Logger
}

func NewConsoleNotifier(logger zerolog.Logger) Notifier {
	return &consoleNotifier{logger: logger}
}

func (n *consoleNotifier) IsConfigured() bool {
	return true
}

func (n *consoleNotifier) SendDownloadNotice(ctx context.Context, record *model.PurchaseRecord) error {
	n.logger.Info().
		Str("to", record.CustomerEmail).
		Str("game", record.GameTitle).
		Str("download_url", record.DownloadURL).
		Msg("console notifier: would send download notice")
	return nil
}

func (n *consoleNotifier) SendRecoveryNotice(ctx context.Context, email string, records []*model.PurchaseRecord) error {
	n.logger.Info().
		Str("to", email).
		Int("purchases", len(records)).
		Msg("console notifier: would send recovery notice")
	for _, rec := range records {
		n.logger.Info().
			Str("game", rec.GameTitle).
			Str("download_url", rec.DownloadURL).
			Msg("console notifier: recovery link")
	}
	return nil
}
