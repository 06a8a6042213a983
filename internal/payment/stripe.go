package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gamestore/internal/config"
	"gamestore/internal/model"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

type stripeProvider struct {
	api           *client.API
	webhookSecret string
	baseURL       string
}

func NewStripeProvider(cfg *config.Stripe, baseURL string) Provider {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &stripeProvider{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       baseURL,
	}
}

func (p *stripeProvider) Name() string {
	return "stripe"
}

func (p *stripeProvider) CreateCheckoutSession(ctx context.Context, game *model.Game, email string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(email),
		SuccessURL:    stripe.String(p.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.baseURL + "/"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(game.Currency)),
					UnitAmount: stripe.Int64(game.Price),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(game.Title),
						Description: stripe.String(game.Description),
						Metadata: map[string]string{
							"game_id": game.ID,
						},
					},
				},
			},
		},
		Metadata: map[string]string{
			"game_id": game.ID,
		},
	}

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return &CheckoutSession{ID: sess.ID}, nil
}

func (p *stripeProvider) VerifyWebhook(ctx context.Context, headers http.Header, body []byte) (*CompletedCheckout, error) {
	sig := headers.Get("Stripe-Signature")
	if sig == "" || p.webhookSecret == "" {
		return nil, fmt.Errorf("%w: missing stripe signature or webhook secret", ErrInvalidEvent)
	}

	event, err := webhook.ConstructEventWithOptions(body, sig, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEvent, err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: decode checkout session: %s", ErrInvalidEvent, err)
	}

	email := sess.CustomerEmail
	if email == "" && sess.CustomerDetails != nil {
		email = sess.CustomerDetails.Email
	}
	if email == "" {
		return nil, fmt.Errorf("%w: no customer email in session", ErrInvalidEvent)
	}

	gameID := sess.Metadata["game_id"]
	if gameID == "" {
		return nil, fmt.Errorf("%w: no game id in session metadata", ErrInvalidEvent)
	}

	return &CompletedCheckout{
		SessionID: sess.ID,
		Email:     email,
		GameID:    gameID,
	}, nil
}
