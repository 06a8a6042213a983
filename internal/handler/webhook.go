package handler

import (
	"io"
	"net/http"

	"gamestore/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type WebhookHandler struct {
	fulfillment     service.FulfillmentService
	defaultProvider string
	logger          zerolog.Logger
}

func NewWebhookHandler(fulfillment service.FulfillmentService, defaultProvider string, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		fulfillment:     fulfillment,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	provider := c.QueryParam("provider")
	if provider == "" {
		provider = h.defaultProvider
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.fulfillment.HandleWebhook(ctx, provider, c.Request().Header, body); err != nil {
		return respondError(c, h.logger, err, "")
	}

	return c.NoContent(http.StatusOK)
}
