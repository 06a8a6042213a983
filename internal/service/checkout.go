package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gamestore/internal/dto"
	"gamestore/internal/payment"
	"gamestore/internal/repository"

	"github.com/rs/zerolog"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailShape.MatchString(email)
}

type CheckoutService interface {
	CreateSession(ctx context.Context, gameID, email, providerName string) (*dto.CheckoutResponse, error)
}

type checkoutServiceImpl struct {
	gameRepo        repository.GameRepository
	purchaseStore   repository.PurchaseStore
	providers       payment.Registry
	defaultProvider string
	logger          zerolog.Logger
}

func NewCheckoutService(
	gameRepo repository.GameRepository,
	purchaseStore repository.PurchaseStore,
	providers payment.Registry,
	defaultProvider string,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		gameRepo:        gameRepo,
		purchaseStore:   purchaseStore,
		providers:       providers,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

func (s *checkoutServiceImpl) CreateSession(ctx context.Context, gameID, email, providerName string) (*dto.CheckoutResponse, error) {
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	email = strings.ToLower(email)

	// Unknown games are rejected before any provider call.
	game, err := s.gameRepo.Resolve(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("resolve game: %w", err)
	}

	owned, err := s.purchaseStore.HasPurchased(ctx, email, gameID)
	if err != nil {
		return nil, fmt.Errorf("duplicate purchase check: %w", err)
	}
	if owned {
		return nil, ErrAlreadyPurchased
	}

	if providerName == "" {
		providerName = s.defaultProvider
	}
	provider, err := s.providers.Get(providerName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	sess, err := provider.CreateCheckoutSession(ctx, game, email)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info().
		Str("provider", provider.Name()).
		Str("session_id", sess.ID).
		Str("game_id", gameID).
		Msg("checkout session created")

	return &dto.CheckoutResponse{
		SessionID:   sess.ID,
		ApprovalURL: sess.ApprovalURL,
	}, nil
}
