package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamestore/internal/client"
	"gamestore/internal/config"
	"gamestore/internal/filestore"
	"gamestore/internal/model"
	"gamestore/internal/notifier"
	"gamestore/internal/payment"
	"gamestore/internal/repository"
	"gamestore/internal/server"
	"gamestore/internal/service"
	"gamestore/internal/token"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(&cfg.Log)

	db := client.InitSqliteClient(cfg.CatalogDSN)
	if !cfg.Environment.Production() {
		if err := client.SeedCatalog(db, demoCatalog()); err != nil {
			logger.Fatal().Err(err).Msg("seed catalog")
		}
	}

	ctx := context.Background()
	rdb := client.NewRedisClient(&cfg.Store)
	recordTTL := time.Duration(cfg.Store.RecordTTLDays) * 24 * time.Hour
	purchaseStore, err := repository.SelectPurchaseStore(ctx, rdb, recordTTL, cfg.Environment.Production())
	if err != nil {
		logger.Fatal().Err(err).Msg("select purchase store")
	}
	if rdb == nil {
		logger.Warn().Msg("redis not configured, using in-memory purchase store (development only)")
	}

	gameRepo := repository.NewGameRepository(db)
	codec := token.NewCodec(cfg.Download.TokenSecret)
	downloadTTL := time.Duration(cfg.Download.ExpiresHours) * time.Hour

	files := filestore.Select(cfg)
	logger.Info().Str("service", files.ServiceName()).Msg("file storage selected")

	mail := notifier.Select(&cfg.Mail, logger)

	providers := payment.Registry{}
	if cfg.Stripe.SecretKey != "" {
		providers["stripe"] = payment.NewStripeProvider(&cfg.Stripe, cfg.BaseURL)
	}
	if cfg.Paypal.ClientID != "" {
		paypalClient := client.NewPaypalClient(&cfg.Paypal)
		providers["paypal"] = payment.NewPaypalProvider(paypalClient, cfg.BaseURL)
	}
	if len(providers) == 0 {
		logger.Fatal().Msg("no payment provider configured")
	}

	catalogService := service.NewCatalogService(gameRepo)
	checkoutService := service.NewCheckoutService(
		gameRepo, purchaseStore, providers, cfg.Payments.Provider, logger,
	)
	fulfillmentService := service.NewFulfillmentService(
		service.FulfillmentConfig{
			BaseURL:        cfg.BaseURL,
			DownloadTTL:    downloadTTL,
			MaxDownloads:   cfg.Download.MaxDownloads,
			DedupeSessions: cfg.Payments.DedupeSessions,
		},
		providers, gameRepo, purchaseStore, codec, mail, logger,
	)
	downloadService := service.NewDownloadService(
		service.DownloadConfig{
			BaseURL:        cfg.BaseURL,
			DownloadTTL:    downloadTTL,
			Production:     cfg.Environment.Production(),
			CountDownloads: cfg.Download.CountDownloads,
		},
		gameRepo, purchaseStore, files, codec, logger,
	)
	recoveryService := service.NewRecoveryService(purchaseStore, mail, logger)

	srv := server.NewServer(
		server.Options{
			BaseURL:         cfg.BaseURL,
			DefaultProvider: cfg.Payments.Provider,
			ServeLocalFiles: !cfg.Environment.Production(),
		},
		catalogService, checkoutService, fulfillmentService, downloadService, recoveryService,
		logger,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info().Msg("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		logger.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}

func newLogger(cfg *config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// demoCatalog seeds a game for local development so checkout and download
// flows work out of the box.
func demoCatalog() []*model.Game {
	return []*model.Game{
		{
			ID:          "demo-game",
			Title:       "Demo Game",
			Description: "A small demo title for local testing.",
			Price:       1999,
			Currency:    "USD",
			ReleaseDate: "2025-01-01",
			Featured:    true,
			Files: []model.GameFile{
				{GameID: "demo-game", Name: "Windows build", Filename: "demo-game-win64.zip", SizeGB: 1.2},
				{GameID: "demo-game", Name: "Linux build", Filename: "demo-game-linux.tar.gz", SizeGB: 1.1},
			},
		},
	}
}
