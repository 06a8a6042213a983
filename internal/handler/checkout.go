package handler

import (
	"net/http"

	"gamestore/internal/dto"
	"gamestore/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	recoveryURL     string
	logger          zerolog.Logger
}

func NewCheckoutHandler(checkoutService service.CheckoutService, baseURL string, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		recoveryURL:     baseURL + "/recover-download",
		logger:          logger,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.CreateSession(ctx, req.GameID, req.Email, req.Provider)
	if err != nil {
		return respondError(c, h.logger, err, h.recoveryURL)
	}

	return c.JSON(http.StatusOK, resp)
}

// Success is the post-payment landing page. Fulfillment happens through the
// webhook; this only confirms receipt to the buyer.
func (h *CheckoutHandler) Success(c echo.Context) error {
	return c.String(http.StatusOK,
		"Payment received. We are processing your purchase and will email your download link shortly.")
}
