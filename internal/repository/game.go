package repository

import (
	"context"
	"errors"

	"gamestore/internal/model"

	"gorm.io/gorm"
)

var ErrGameNotFound = errors.New("game not found")

// GameRepository is the product catalog. Resolve returns the game with its
// declared files preloaded.
type GameRepository interface {
	Resolve(ctx context.Context, gameID string) (*model.Game, error)
	List(ctx context.Context) ([]*model.Game, error)
}

type gameRepoImpl struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepoImpl{
		db: db,
	}
}

func (r *gameRepoImpl) Resolve(ctx context.Context, gameID string) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).
		Preload("Files").
		Where("id = ?", gameID).
		First(&game).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	return &game, nil
}

func (r *gameRepoImpl) List(ctx context.Context) ([]*model.Game, error) {
	var games []*model.Game
	err := r.db.WithContext(ctx).
		Preload("Files").
		Order("featured DESC, id").
		Find(&games).Error

	if err != nil {
		return nil, err
	}

	return games, nil
}
