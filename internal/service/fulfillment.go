package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gamestore/internal/model"
	"gamestore/internal/notifier"
	"gamestore/internal/payment"
	"gamestore/internal/repository"
	"gamestore/internal/token"

	"github.com/rs/zerolog"
)

// FulfillmentService turns a verified payment-completed event into exactly
// one purchase record plus one best-effort notification.
type FulfillmentService interface {
	HandleWebhook(ctx context.Context, providerName string, headers http.Header, body []byte) error
}

type FulfillmentConfig struct {
	BaseURL      string
	DownloadTTL  time.Duration
	MaxDownloads int
	// DedupeSessions skips fulfillment when a record with the same session
	// id already exists, turning provider redelivery into a no-op.
	DedupeSessions bool
}

type fulfillmentServiceImpl struct {
	cfg           FulfillmentConfig
	providers     payment.Registry
	gameRepo      repository.GameRepository
	purchaseStore repository.PurchaseStore
	codec         *token.Codec
	notifier      notifier.Notifier
	logger        zerolog.Logger
	now           func() time.Time
}

func NewFulfillmentService(
	cfg FulfillmentConfig,
	providers payment.Registry,
	gameRepo repository.GameRepository,
	purchaseStore repository.PurchaseStore,
	codec *token.Codec,
	n notifier.Notifier,
	logger zerolog.Logger,
) FulfillmentService {
	return &fulfillmentServiceImpl{
		cfg:           cfg,
		providers:     providers,
		gameRepo:      gameRepo,
		purchaseStore: purchaseStore,
		codec:         codec,
		notifier:      n,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *fulfillmentServiceImpl) HandleWebhook(ctx context.Context, providerName string, headers http.Header, body []byte) error {
	provider, err := s.providers.Get(providerName)
	if err != nil {
		return fmt.Errorf("%w: %s", payment.ErrInvalidEvent, err)
	}

	completed, err := provider.VerifyWebhook(ctx, headers, body)
	if err != nil {
		return fmt.Errorf("verify webhook: %w", err)
	}
	if completed == nil {
		// Authentic event we don't act on.
		return nil
	}

	game, err := s.gameRepo.Resolve(ctx, completed.GameID)
	if err != nil {
		// Payment is already captured at this point. Log distinctly so an
		// operator can reconcile manually.
		s.logger.Error().
			Str("session_id", completed.SessionID).
			Str("game_id", completed.GameID).
			Str("email", completed.Email).
			Msg("RECONCILE: payment captured for unresolvable game")
		return fmt.Errorf("resolve purchased game: %w", err)
	}

	if s.cfg.DedupeSessions {
		done, err := s.alreadyFulfilled(ctx, completed)
		if err != nil {
			// A failed read must not block fulfillment; the worst case is
			// the harmless duplicate record dedupe exists to avoid.
			s.logger.Error().Err(err).
				Str("session_id", completed.SessionID).
				Msg("session dedupe check failed, fulfilling anyway")
		} else if done {
			s.logger.Info().
				Str("session_id", completed.SessionID).
				Msg("webhook redelivery for fulfilled session, skipping")
			return nil
		}
	}

	tok, err := s.codec.Encode(completed.SessionID, completed.Email, completed.GameID, s.cfg.DownloadTTL)
	if err != nil {
		return fmt.Errorf("mint entitlement token: %w", err)
	}

	now := s.now()
	record := &model.PurchaseRecord{
		SessionID:     completed.SessionID,
		GameID:        completed.GameID,
		GameTitle:     game.Title,
		CustomerEmail: completed.Email,
		PurchaseDate:  now,
		DownloadURL: fmt.Sprintf("%s/download/%s?token=%s",
			s.cfg.BaseURL, url.PathEscape(completed.GameID), tok),
		DownloadExpires: now.Add(s.cfg.DownloadTTL),
		MaxDownloads:    s.cfg.MaxDownloads,
		DownloadCount:   0,
	}

	if err := s.purchaseStore.Store(ctx, completed.Email, record); err != nil {
		return fmt.Errorf("store purchase record: %w", err)
	}

	s.logger.Info().
		Str("session_id", completed.SessionID).
		Str("game_id", completed.GameID).
		Str("email", completed.Email).
		Msg("purchase record stored")

	// Once the record is persisted the webhook must succeed. A lost email
	// is recoverable; a retried webhook would duplicate the record.
	if err := s.notifier.SendDownloadNotice(ctx, record); err != nil {
		s.logger.Error().Err(err).
			Str("session_id", completed.SessionID).
			Str("email", completed.Email).
			Msg("download notice failed, record kept")
	}

	return nil
}

func (s *fulfillmentServiceImpl) alreadyFulfilled(ctx context.Context, completed *payment.CompletedCheckout) (bool, error) {
	records, err := s.purchaseStore.List(ctx, completed.Email)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.SessionID == completed.SessionID {
			return true, nil
		}
	}
	return false, nil
}
