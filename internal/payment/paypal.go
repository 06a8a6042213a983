package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gamestore/internal/client"
	"gamestore/internal/model"
)

type paypalProvider struct {
	paypalClient client.PaypalClient
	baseURL      string
}

func NewPaypalProvider(paypalClient client.PaypalClient, baseURL string) Provider {
	return &paypalProvider{
		paypalClient: paypalClient,
		baseURL:      baseURL,
	}
}

func (p *paypalProvider) Name() string {
	return "paypal"
}

func (p *paypalProvider) CreateCheckoutSession(ctx context.Context, game *model.Game, email string) (*CheckoutSession, error) {
	resp, err := p.paypalClient.CreateCheckoutOrder(ctx, &client.CreateOrderRequest{
		GameID:      game.ID,
		Title:       game.Title,
		AmountValue: fmt.Sprintf("%d.%02d", game.Price/100, game.Price%100),
		Currency:    game.Currency,
		Email:       email,
		ReturnURL:   p.baseURL + "/success",
		CancelURL:   p.baseURL + "/",
	})
	if err != nil {
		return nil, fmt.Errorf("paypal create order: %w", err)
	}

	return &CheckoutSession{
		ID:          resp.OrderID,
		ApprovalURL: resp.ApproveURL,
	}, nil
}

func (p *paypalProvider) VerifyWebhook(ctx context.Context, headers http.Header, body []byte) (*CompletedCheckout, error) {
	if err := p.paypalClient.VerifyWebhookSignature(ctx, headers, body); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEvent, err)
	}

	var event model.PayPalWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: decode webhook payload: %s", ErrInvalidEvent, err)
	}

	if event.EventType != "PAYMENT.CAPTURE.COMPLETED" {
		return nil, nil
	}

	sessionID := event.Resource.SupplementaryData.RelatedIDs.OrderID
	if sessionID == "" {
		return nil, fmt.Errorf("%w: no order id in webhook payload", ErrInvalidEvent)
	}
	email := event.Resource.Payer.Email
	if email == "" {
		return nil, fmt.Errorf("%w: no payer email in webhook payload", ErrInvalidEvent)
	}
	gameID := event.Resource.CustomID
	if gameID == "" {
		return nil, fmt.Errorf("%w: no game id in webhook payload", ErrInvalidEvent)
	}

	return &CompletedCheckout{
		SessionID: sessionID,
		Email:     email,
		GameID:    gameID,
	}, nil
}
