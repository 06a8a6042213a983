package handler

import (
	"errors"
	"net/http"

	"gamestore/internal/dto"
	"gamestore/internal/payment"
	"gamestore/internal/repository"
	"gamestore/internal/service"
	"gamestore/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// respondError maps service-level errors onto HTTP statuses and the
// structured error envelope. Upstream details are logged, never echoed to
// the caller.
func respondError(c echo.Context, logger zerolog.Logger, err error, recoveryURL string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	case errors.Is(err, service.ErrInvalidEmail):
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{
			Error: "Please enter a valid email address",
			Code:  "VALIDATION_ERROR",
		})
	case errors.Is(err, payment.ErrInvalidEvent):
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{
			Error: "Webhook verification failed",
			Code:  "INVALID_EVENT",
		})
	case errors.Is(err, service.ErrAlreadyPurchased):
		return c.JSON(http.StatusConflict, &dto.ErrorResponse{
			Error:       "You already own this game! Check your email for download links.",
			Code:        "ALREADY_PURCHASED",
			RecoveryURL: recoveryURL,
		})
	case errors.Is(err, repository.ErrGameNotFound):
		return c.JSON(http.StatusNotFound, &dto.ErrorResponse{
			Error: "Game not found",
			Code:  "NOT_FOUND",
		})
	case errors.Is(err, service.ErrFileNotFound):
		return c.JSON(http.StatusNotFound, &dto.ErrorResponse{
			Error: "File not found",
			Code:  "NOT_FOUND",
		})
	case errors.Is(err, service.ErrNoPurchases):
		return c.JSON(http.StatusNotFound, &dto.ErrorResponse{
			Error: "No purchases found for this email address. Please check your email or contact support.",
			Code:  "NOT_FOUND",
		})
	case errors.Is(err, token.ErrExpired):
		return c.JSON(http.StatusUnauthorized, &dto.ErrorResponse{
			Error: "Invalid or expired download token",
			Code:  "TOKEN_EXPIRED",
		})
	case errors.Is(err, token.ErrInvalid):
		return c.JSON(http.StatusUnauthorized, &dto.ErrorResponse{
			Error: "Invalid or expired download token",
			Code:  "TOKEN_INVALID",
		})
	case errors.Is(err, service.ErrAllExpired):
		return c.JSON(http.StatusGone, &dto.ErrorResponse{
			Error: "All download links for this email have expired. Please contact support for assistance.",
			Code:  "LINKS_EXPIRED",
		})
	default:
		logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, &dto.ErrorResponse{
			Error: "Internal server error. Please try again later.",
			Code:  "INTERNAL_ERROR",
		})
	}
}
