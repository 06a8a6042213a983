package handler

import (
	"net/http"

	"gamestore/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type DownloadHandler struct {
	downloadService service.DownloadService
	logger          zerolog.Logger
}

func NewDownloadHandler(downloadService service.DownloadService, logger zerolog.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloadService: downloadService,
		logger:          logger,
	}
}

// DownloadPage serves the link customers receive by email. It lists every
// declared file for the purchased game with a per-file fetch URL.
func (h *DownloadHandler) DownloadPage(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.downloadService.ListDownloads(ctx, c.Param("gameId"), c.QueryParam("token"))
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *DownloadHandler) Download(c echo.Context) error {
	ctx := c.Request().Context()

	gameID := c.QueryParam("gameId")
	filename := c.QueryParam("filename")
	tok := c.QueryParam("token")

	signedURL, err := h.downloadService.ResolveDownload(ctx, gameID, filename, tok)
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	return c.Redirect(http.StatusFound, signedURL)
}
