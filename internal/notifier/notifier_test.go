package notifier

import (
	"testing"
	"time"

	"gamestore/internal/config"
	"gamestore/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testRecord() *model.PurchaseRecord {
	return &model.PurchaseRecord{
		SessionID:       "cs_test",
		GameID:          "demo-game",
		GameTitle:       "Demo Game",
		CustomerEmail:   "foo@bar.com",
		PurchaseDate:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		DownloadURL:     "http://localhost:8080/download/demo-game?token=tok",
		DownloadExpires: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		MaxDownloads:    5,
	}
}

func TestDownloadNoticeContent(t *testing.T) {
	rec := testRecord()

	assert.Equal(t, "Your Demo Game download is ready!", downloadSubject(rec))

	body := downloadBody(rec)
	assert.Contains(t, body, "Thanks for buying Demo Game!")
	assert.Contains(t, body, rec.DownloadURL)
	assert.Contains(t, body, "3 March 2026")
	assert.Contains(t, body, "up to 5 downloads")
}

func TestRecoveryNoticeContent(t *testing.T) {
	body := recoveryBody([]*model.PurchaseRecord{testRecord()})

	assert.Contains(t, body, "Demo Game")
	assert.Contains(t, body, "purchased 1 March 2026")
	assert.Contains(t, body, "http://localhost:8080/download/demo-game?token=tok")
}

func TestFormatFrom(t *testing.T) {
	assert.Equal(t, "Game Store <downloads@localhost>", formatFrom(&config.Mail{
		FromName: "Game Store",
		FromAddr: "downloads@localhost",
	}))
}

func TestSelect(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("resend with key", func(t *testing.T) {
		n := Select(&config.Mail{Provider: "resend", ResendAPIKey: "re_123"}, logger)
		assert.IsType(t, &resendNotifier{}, n)
	})

	t.Run("smtp with host", func(t *testing.T) {
		n := Select(&config.Mail{Provider: "smtp", SMTPHost: "mail.example.com", SMTPPort: 587}, logger)
		assert.IsType(t, &smtpNotifier{}, n)
	})

	t.Run("missing credentials fall back to console", func(t *testing.T) {
		n := Select(&config.Mail{Provider: "resend"}, logger)
		assert.IsType(t, &consoleNotifier{}, n)
	})

	t.Run("console by default", func(t *testing.T) {
		n := Select(&config.Mail{Provider: "console"}, logger)
		assert.IsType(t, &consoleNotifier{}, n)
	})
}
