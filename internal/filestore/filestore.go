// Package filestore abstracts the object-storage providers that serve the
// actual game files. Adapters produce provider-signed, time-limited URLs;
// the download link issuer in the service layer adds the internal-redirect
// fallback when an adapter fails or is unconfigured.
package filestore

import (
	"context"
	"errors"
	"time"

	"gamestore/internal/config"
)

var ErrNotConfigured = errors.New("file storage not configured")

type FileStore interface {
	IsConfigured() bool
	ServiceName() string
	GenerateDownloadURL(ctx context.Context, gameID, fileName string, expiresIn time.Duration) (string, error)
}

// Select picks the adapter once at startup: the configured provider when one
// is named, otherwise the first fully configured adapter, otherwise local.
func Select(cfg *config.Config) FileStore {
	r2 := NewR2Store(&cfg.R2)
	bunny := NewBunnyStore(&cfg.Bunny)
	local := NewLocalStore(cfg.BaseURL)

	switch cfg.Files.Provider {
	case "cloudflare-r2", "r2":
		return r2
	case "bunny-net", "bunny":
		return bunny
	case "local":
		return local
	}

	if r2.IsConfigured() {
		return r2
	}
	if bunny.IsConfigured() {
		return bunny
	}
	return local
}
