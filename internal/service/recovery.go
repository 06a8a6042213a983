package service

import (
	"context"
	"fmt"
	"time"

	"gamestore/internal/dto"
	"gamestore/internal/model"
	"gamestore/internal/notifier"
	"gamestore/internal/repository"

	"github.com/rs/zerolog"
)

// RecoveryService re-sends still-valid download links for an email. It never
// regenerates or extends grants; expired purchases stay expired.
type RecoveryService interface {
	Recover(ctx context.Context, email string) (*dto.RecoverResponse, error)
}

type recoveryServiceImpl struct {
	purchaseStore repository.PurchaseStore
	notifier      notifier.Notifier
	logger        zerolog.Logger
	now           func() time.Time
}

func NewRecoveryService(purchaseStore repository.PurchaseStore, n notifier.Notifier, logger zerolog.Logger) RecoveryService {
	return &recoveryServiceImpl{
		purchaseStore: purchaseStore,
		notifier:      n,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *recoveryServiceImpl) Recover(ctx context.Context, email string) (*dto.RecoverResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}

	records, err := s.purchaseStore.List(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoPurchases
	}

	now := s.now()
	valid := make([]*model.PurchaseRecord, 0, len(records))
	for _, rec := range records {
		if !rec.Expired(now) {
			valid = append(valid, rec)
		}
	}
	if len(valid) == 0 {
		return nil, ErrAllExpired
	}

	if err := s.notifier.SendRecoveryNotice(ctx, email, valid); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("recovery notice failed")
		return nil, fmt.Errorf("%w: %s", ErrNotifyFailed, err)
	}

	s.logger.Info().
		Str("email", email).
		Int("valid", len(valid)).
		Int("total", len(records)).
		Msg("recovery notice sent")

	return &dto.RecoverResponse{
		Success: true,
		Message: fmt.Sprintf("Found %d purchase(s). Download links have been sent to your email.", len(valid)),
	}, nil
}
