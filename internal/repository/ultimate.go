package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const ultimateKeyPrefix = "ultimate:"

type UltimateGameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.UltimateGame) error
	GetByID(ctx context.Context, id string) (*entity.UltimateGame, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbUltimateGame struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUltimateGameRepository(client *redis.Client, ttl time.Duration) UltimateGameRepository {
	return &dbUltimateGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbUltimateGame) CreateOrUpdate(ctx context.Context, game *entity.UltimateGame) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal ultimate game: %w", err)
	}

	if err = that.client.Set(ctx, ultimateKeyPrefix+game.ID, gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set ultimate game: %w", err)
	}

	return nil
}

func (that *dbUltimateGame) GetByID(ctx context.Context, id string) (*entity.UltimateGame, error) {
	response, err := that.client.Get(ctx, ultimateKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get ultimate game by id: %w", err)
	}

	var existingGame entity.UltimateGame
	if err = json.Unmarshal(response, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ultimate game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbUltimateGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, ultimateKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete ultimate game by id: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return nil
}
