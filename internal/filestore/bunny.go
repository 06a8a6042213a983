package filestore

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"gamestore/internal/config"
)

// bunnyStore signs CDN URLs with Bunny's token authentication scheme:
// base64(sha256(key + path + expires)) with URL-safe characters, carried as
// token/expires query parameters.
type bunnyStore struct {
	cfg *config.Bunny
}

func NewBunnyStore(cfg *config.Bunny) FileStore {
	return &bunnyStore{cfg: cfg}
}

func (s *bunnyStore) IsConfigured() bool {
	return s.cfg.TokenKey != "" && s.cfg.StorageZone != "" && s.cfg.CDNURL != ""
}

func (s *bunnyStore) ServiceName() string {
	return "Bunny.net CDN"
}

func (s *bunnyStore) GenerateDownloadURL(ctx context.Context, gameID, fileName string, expiresIn time.Duration) (string, error) {
	if !s.IsConfigured() {
		return "", ErrNotConfigured
	}

	path := "/" + gameID + "/" + fileName
	expires := time.Now().Add(expiresIn).Unix()

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%d", s.cfg.TokenKey, path, expires)))
	tok := base64.RawURLEncoding.EncodeToString(sum[:])

	base := strings.TrimRight(s.cfg.CDNURL, "/")
	return fmt.Sprintf("%s%s?token=%s&expires=%d", base, path, tok, expires), nil
}
