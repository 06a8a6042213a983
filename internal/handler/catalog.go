package handler

import (
	"net/http"

	"gamestore/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	logger         zerolog.Logger
}

func NewCatalogHandler(catalogService service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

func (h *CatalogHandler) ListGames(c echo.Context) error {
	games, err := h.catalogService.Games(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	return c.JSON(http.StatusOK, games)
}
