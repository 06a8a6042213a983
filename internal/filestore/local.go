package filestore

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// localStore is the development stand-in: files are served straight from the
// local files/ directory by this process, so the "signed" URL is just the
// static route. No expiry is enforced; local is never selected in
// production unless explicitly configured.
type localStore struct {
	baseURL string
}

func NewLocalStore(baseURL string) FileStore {
	return &localStore{
		baseURL: baseURL,
	}
}

func (s *localStore) IsConfigured() bool {
	return true
}

func (s *localStore) ServiceName() string {
	return "Local (Development)"
}

func (s *localStore) GenerateDownloadURL(ctx context.Context, gameID, fileName string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/files/%s/%s",
		s.baseURL, url.PathEscape(gameID), url.PathEscape(fileName)), nil
}
