package server

import (
	"gamestore/internal/handler"
	"gamestore/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	echo            *echo.Echo
	catalogHandler  *handler.CatalogHandler
	checkoutHandler *handler.CheckoutHandler
	webhookHandler  *handler.WebhookHandler
	downloadHandler *handler.DownloadHandler
	recoveryHandler *handler.RecoveryHandler
}

type Options struct {
	BaseURL         string
	DefaultProvider string
	// ServeLocalFiles mounts the files/ directory; used with the local
	// file-storage adapter in development.
	ServeLocalFiles bool
}

func NewServer(
	opts Options,
	catalogService service.CatalogService,
	checkoutService service.CheckoutService,
	fulfillmentService service.FulfillmentService,
	downloadService service.DownloadService,
	recoveryService service.RecoveryService,
	logger zerolog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		catalogHandler:  handler.NewCatalogHandler(catalogService, logger),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService, opts.BaseURL, logger),
		webhookHandler:  handler.NewWebhookHandler(fulfillmentService, opts.DefaultProvider, logger),
		downloadHandler: handler.NewDownloadHandler(downloadService, logger),
		recoveryHandler: handler.NewRecoveryHandler(recoveryService, logger),
	}

	s.setupRoutes()

	if opts.ServeLocalFiles {
		e.Static("/files", "files")
	}

	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	s.echo.GET("/api/games", s.catalogHandler.ListGames)

	s.echo.POST("/checkout", s.checkoutHandler.Checkout)
	s.echo.GET("/success", s.checkoutHandler.Success)

	s.echo.POST("/webhook", s.webhookHandler.HandleWebhook)

	s.echo.GET("/download", s.downloadHandler.Download)
	s.echo.GET("/download/:gameId", s.downloadHandler.DownloadPage)
	s.echo.POST("/recover-download", s.recoveryHandler.RecoverDownload)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
