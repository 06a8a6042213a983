package notifier

import (
	"context"
	"fmt"

	"gamestore/internal/config"
	"gamestore/internal/model"

	"github.com/resend/resend-go/v2"
)

type resendNotifier struct {
	client *resend.Client
	cfg    *config.Mail
}

func NewResendNotifier(cfg *config.Mail) Notifier {
	var c *resend.Client
	if cfg.ResendAPIKey != "" {
		c = resend.NewClient(cfg.ResendAPIKey)
	}
	return &resendNotifier{
		client: c,
		cfg:    cfg,
	}
}

func (n *resendNotifier) IsConfigured() bool {
	return n.client != nil
}

func (n *resendNotifier) SendDownloadNotice(ctx context.Context, record *model.PurchaseRecord) error {
	if n.client == nil {
		return fmt.Errorf("resend not configured")
	}

	_, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    formatFrom(n.cfg),
		To:      []string{record.CustomerEmail},
		Subject: downloadSubject(record),
		Text:    downloadBody(record),
	})
	if err != nil {
		return fmt.Errorf("resend send download notice: %w", err)
	}
	return nil
}

func (n *resendNotifier) SendRecoveryNotice(ctx context.Context, email string, records []*model.PurchaseRecord) error {
	if n.client == nil {
		return fmt.Errorf("resend not configured")
	}

	_, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    formatFrom(n.cfg),
		To:      []string{email},
		Subject: recoverySubject(),
		Text:    recoveryBody(records),
	})
	if err != nil {
		return fmt.Errorf("resend send recovery notice: %w", err)
	}
	return nil
}
