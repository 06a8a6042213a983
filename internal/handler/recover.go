package handler

import (
	"net/http"

	"gamestore/internal/dto"
	"gamestore/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type RecoveryHandler struct {
	recoveryService service.RecoveryService
	logger          zerolog.Logger
}

func NewRecoveryHandler(recoveryService service.RecoveryService, logger zerolog.Logger) *RecoveryHandler {
	return &RecoveryHandler{
		recoveryService: recoveryService,
		logger:          logger,
	}
}

func (h *RecoveryHandler) RecoverDownload(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecoverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.recoveryService.Recover(ctx, req.Email)
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	return c.JSON(http.StatusOK, resp)
}
