package service

import (
	"context"
	"fmt"

	"gamestore/internal/dto"
	"gamestore/internal/repository"
)

// CatalogService lists the storefront catalog for browsing.
type CatalogService interface {
	Games(ctx context.Context) ([]*dto.GameSummary, error)
}

type catalogServiceImpl struct {
	gameRepo repository.GameRepository
}

func NewCatalogService(gameRepo repository.GameRepository) CatalogService {
	return &catalogServiceImpl{
		gameRepo: gameRepo,
	}
}

func (s *catalogServiceImpl) Games(ctx context.Context) ([]*dto.GameSummary, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]*dto.GameSummary, 0, len(games))
	for _, game := range games {
		summary := &dto.GameSummary{
			ID:          game.ID,
			Title:       game.Title,
			Description: game.Description,
			Price:       game.Price,
			Currency:    game.Currency,
			Cover:       game.Cover,
			Thumbnail:   game.Thumbnail,
			Featured:    game.Featured,
			ReleaseDate: game.ReleaseDate,
		}
		for _, f := range game.Files {
			summary.Files = append(summary.Files, dto.GameFileSummary{
				Name:     f.Name,
				Filename: f.Filename,
				SizeGB:   f.SizeGB,
			})
		}
		out = append(out, summary)
	}
	return out, nil
}
