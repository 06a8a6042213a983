package notifier

import (
	"context"
	"fmt"

	"gamestore/internal/config"
	"gamestore/internal/model"

	gomail "gopkg.in/gomail.v2"
)

type smtpNotifier struct {
	dialer *gomail.Dialer
	cfg    *config.Mail
}

func NewSMTPNotifier(cfg *config.Mail) Notifier {
	var d *gomail.Dialer
	if cfg.SMTPHost != "" {
		d = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return &smtpNotifier{
		dialer: d,
		cfg:    cfg,
	}
}

func (n *smtpNotifier) IsConfigured() bool {
	return n.dialer != nil
}

func (n *smtpNotifier) SendDownloadNotice(ctx context.Context, record *model.PurchaseRecord) error {
	return n.send(record.CustomerEmail, downloadSubject(record), downloadBody(record))
}

func (n *smtpNotifier) SendRecoveryNotice(ctx context.Context, email string, records []*model.PurchaseRecord) error {
	return n.send(email, recoverySubject(), recoveryBody(records))
}

func (n *smtpNotifier) send(to, subject, body string) error {
	if n.dialer == nil {
		return fmt.Errorf("smtp not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.FromAddr, n.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
