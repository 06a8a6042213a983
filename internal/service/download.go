package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gamestore/internal/dto"
	"gamestore/internal/filestore"
	"gamestore/internal/repository"
	"gamestore/internal/token"

	"github.com/rs/zerolog"
)

// DownloadService is the download link issuer plus the access decision for
// the external-facing download endpoint.
type DownloadService interface {
	// ResolveDownload validates the presented token, checks the file is
	// declared on the game and returns the provider-signed URL to redirect
	// to.
	ResolveDownload(ctx context.Context, gameID, filename, tok string) (string, error)

	// ListDownloads backs the emailed per-game download page. It validates
	// the entitlement token and issues one download URL per declared file.
	ListDownloads(ctx context.Context, gameID, tok string) (*dto.DownloadListResponse, error)

	// IssueURL composes a download URL for the given file. It never fails
	// for an unconfigured adapter: adapter errors fall back to an internal
	// redirect URL carrying a file-access token.
	IssueURL(ctx context.Context, gameID, filename string) (string, error)
}

type DownloadConfig struct {
	BaseURL     string
	DownloadTTL time.Duration
	// Production forbids tokenless downloads and disables diagnostic
	// fallbacks.
	Production bool
	// CountDownloads wires the per-purchase counter into the download path.
	CountDownloads bool
}

type downloadServiceImpl struct {
	cfg           DownloadConfig
	gameRepo      repository.GameRepository
	purchaseStore repository.PurchaseStore
	files         filestore.FileStore
	codec         *token.Codec
	logger        zerolog.Logger
}

func NewDownloadService(
	cfg DownloadConfig,
	gameRepo repository.GameRepository,
	purchaseStore repository.PurchaseStore,
	files filestore.FileStore,
	codec *token.Codec,
	logger zerolog.Logger,
) DownloadService {
	return &downloadServiceImpl{
		cfg:           cfg,
		gameRepo:      gameRepo,
		purchaseStore: purchaseStore,
		files:         files,
		codec:         codec,
		logger:        logger,
	}
}

func (s *downloadServiceImpl) ResolveDownload(ctx context.Context, gameID, filename, tok string) (string, error) {
	if gameID == "" || filename == "" {
		return "", fmt.Errorf("%w: gameId and filename required", ErrValidation)
	}

	var sessionID string
	switch {
	case tok != "":
		sid, err := s.validateToken(gameID, filename, tok)
		if err != nil {
			return "", err
		}
		sessionID = sid
	case s.cfg.Production:
		// No token means no access control; only tolerable in development.
		return "", token.ErrInvalid
	default:
		s.logger.Warn().
			Str("game_id", gameID).
			Msg("no download token presented, allowing for development")
	}

	game, err := s.gameRepo.Resolve(ctx, gameID)
	if err != nil {
		return "", fmt.Errorf("resolve game: %w", err)
	}
	if game.File(filename) == nil {
		return "", ErrFileNotFound
	}

	signed, err := s.files.GenerateDownloadURL(ctx, gameID, filename, s.cfg.DownloadTTL)
	if err != nil {
		return "", fmt.Errorf("generate signed url via %s: %w", s.files.ServiceName(), err)
	}

	// Counted only once a URL is actually served; a failed presign must not
	// consume a download.
	if s.cfg.CountDownloads && sessionID != "" {
		if err := s.purchaseStore.IncrementDownloadCount(ctx, sessionID); err != nil {
			s.logger.Warn().Err(err).
				Str("session_id", sessionID).
				Msg("download count not incremented")
		}
	}

	return signed, nil
}

func (s *downloadServiceImpl) ListDownloads(ctx context.Context, gameID, tok string) (*dto.DownloadListResponse, error) {
	if gameID == "" {
		return nil, fmt.Errorf("%w: gameId required", ErrValidation)
	}

	switch {
	case tok != "":
		ent, err := s.codec.Decode(tok)
		if err != nil {
			return nil, err
		}
		if ent.GameID != gameID {
			return nil, token.ErrInvalid
		}
	case s.cfg.Production:
		return nil, token.ErrInvalid
	default:
		s.logger.Warn().
			Str("game_id", gameID).
			Msg("no download token presented, allowing for development")
	}

	game, err := s.gameRepo.Resolve(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("resolve game: %w", err)
	}

	resp := &dto.DownloadListResponse{
		GameID:    game.ID,
		GameTitle: game.Title,
		Files:     make([]dto.DownloadFileEntry, 0, len(game.Files)),
	}
	for _, f := range game.Files {
		u, err := s.IssueURL(ctx, game.ID, f.Filename)
		if err != nil {
			return nil, err
		}
		resp.Files = append(resp.Files, dto.DownloadFileEntry{
			Name:     f.Name,
			Filename: f.Filename,
			SizeGB:   f.SizeGB,
			URL:      u,
		})
	}
	return resp, nil
}

// validateToken accepts either token flavor. An entitlement token must match
// the game; a file-access token must match the game and the exact file.
// Returns the purchase session id when an entitlement token was presented.
func (s *downloadServiceImpl) validateToken(gameID, filename, tok string) (string, error) {
	ent, err := s.codec.Decode(tok)
	if err == nil {
		if ent.GameID != gameID {
			return "", token.ErrInvalid
		}
		return ent.SessionID, nil
	}
	if errors.Is(err, token.ErrExpired) {
		return "", err
	}

	grant, ferr := s.codec.DecodeFile(tok)
	if ferr != nil {
		return "", ferr
	}
	if grant.GameID != gameID || grant.FileName != filename {
		return "", token.ErrInvalid
	}
	return "", nil
}

func (s *downloadServiceImpl) IssueURL(ctx context.Context, gameID, filename string) (string, error) {
	signed, err := s.files.GenerateDownloadURL(ctx, gameID, filename, s.cfg.DownloadTTL)
	if err == nil {
		return signed, nil
	}

	s.logger.Warn().Err(err).
		Str("service", s.files.ServiceName()).
		Str("game_id", gameID).
		Msg("storage adapter failed, issuing internal fallback url")

	fileTok, terr := s.codec.EncodeFile(gameID, filename, s.cfg.DownloadTTL)
	if terr != nil {
		return "", fmt.Errorf("encode fallback token: %w", terr)
	}

	return fmt.Sprintf("%s/download?gameId=%s&filename=%s&token=%s",
		s.cfg.BaseURL, url.QueryEscape(gameID), url.QueryEscape(filename), fileTok), nil
}
