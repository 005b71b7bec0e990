package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type ultimateRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.UltimateGame) error
	GetByID(ctx context.Context, id string) (*entity.UltimateGame, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (int, error)
}

// GameManager loads a session, applies one operation to its engine and stores it back.
// Mutating calls are serialized so an engine never sees two callers at once.
type GameManager struct {
	logger *slog.Logger

	gameRepo     gameRepo
	ultimateRepo ultimateRepo
	botService   botService

	freeChoice bool
	newID      func() string

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, ultimateRepo ultimateRepo, botService botService, freeChoice bool) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:     gameRepo,
		ultimateRepo: ultimateRepo,
		botService:   botService,

		freeChoice: freeChoice,
		newID:      uuid.NewString,
	}
}

// StartGame creates a flat game. mode is two_player, easy, normal or hard.
func (that *GameManager) StartGame(ctx context.Context, mode string) (*entity.Game, error) {
	difficulty, err := entity.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	game := entity.NewGame(that.newID(), difficulty)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started", "gameID", game.ID, "mode", difficulty.Mode())

	return game, nil
}

// ResetGame replaces the game with a fresh one under the same id and mode.
func (that *GameManager) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	existingGame, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	game := entity.NewGame(existingGame.ID, existingGame.Difficulty)
	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game reset", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(cell); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logFinished(game)

	return game, nil
}

// MakeBotTurn lets the automated opponent play O with the game's difficulty tier.
func (that *GameManager) MakeBotTurn(ctx context.Context, id string) (*entity.Game, int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	cell, err := that.botService.MakeTurn(game)
	if err != nil {
		return nil, 0, fmt.Errorf("failed make bot turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, 0, err
	}

	that.logFinished(game)

	return game, cell, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	return that.getGameByID(ctx, id)
}

func (that *GameManager) EndGame(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	that.logger.Info("game ended", "gameID", id)

	return nil
}

func (that *GameManager) StartUltimateGame(ctx context.Context) (*entity.UltimateGame, error) {
	game := entity.NewUltimateGame(that.newID(), that.freeChoice)
	if err := that.ultimateRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create ultimate game: %w", err)
	}

	that.logger.Info("ultimate game started", "gameID", game.ID, "freeChoice", game.FreeChoice)

	return game, nil
}

// ResetUltimateGame replaces the game with a fresh one, keeping its id and sub-board rule.
func (that *GameManager) ResetUltimateGame(ctx context.Context, id string) (*entity.UltimateGame, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	existingGame, err := that.getUltimateGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	game := entity.NewUltimateGame(existingGame.ID, existingGame.FreeChoice)
	if err = that.updateUltimateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("ultimate game reset", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) MakeUltimateTurn(ctx context.Context, id string, move entity.UltimateMove) (*entity.UltimateGame, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getUltimateGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(move); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateUltimateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		that.logger.Info("ultimate game finished", "gameID", game.ID, "status", game.Status, "winner", game.Winner)
	}

	return game, nil
}

func (that *GameManager) GetUltimateGame(ctx context.Context, id string) (*entity.UltimateGame, error) {
	return that.getUltimateGameByID(ctx, id)
}

func (that *GameManager) EndUltimateGame(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ultimateRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to end ultimate game: %w", err)
	}

	that.logger.Info("ultimate game ended", "gameID", id)

	return nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) getUltimateGameByID(ctx context.Context, id string) (*entity.UltimateGame, error) {
	existingGame, err := that.ultimateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ultimate game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateUltimateGame(ctx context.Context, game *entity.UltimateGame) error {
	if err := that.ultimateRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update ultimate game: %w", err)
	}

	return nil
}

func (that *GameManager) logFinished(game *entity.Game) {
	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "status", game.Status, "winner", game.Winner)
	}
}
