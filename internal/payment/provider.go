// Package payment holds the payment-provider abstraction and its two
// implementations. Providers form a closed set selected once at startup from
// configuration.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gamestore/internal/model"
)

var (
	// ErrInvalidEvent covers bad signatures and malformed webhook payloads.
	ErrInvalidEvent    = errors.New("invalid webhook event")
	ErrUnknownProvider = errors.New("unknown payment provider")
)

// CheckoutSession is a provider-created session the buyer completes.
type CheckoutSession struct {
	ID          string
	ApprovalURL string // empty for providers whose frontend drives the redirect
}

// CompletedCheckout is the verified outcome of a payment-completed event.
type CompletedCheckout struct {
	SessionID string
	Email     string
	GameID    string
}

type Provider interface {
	Name() string
	CreateCheckoutSession(ctx context.Context, game *model.Game, email string) (*CheckoutSession, error)
	// VerifyWebhook authenticates an inbound event. It returns (nil, nil)
	// for authentic events that need no fulfillment, and wraps
	// ErrInvalidEvent for anything that fails verification or lacks the
	// required metadata.
	VerifyWebhook(ctx context.Context, headers http.Header, body []byte) (*CompletedCheckout, error)
}

// Registry is the fixed provider set built in main.
type Registry map[string]Provider

func (r Registry) Get(name string) (Provider, error) {
	p, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}
