package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
)

const maxGameIDAttempts = 10

var ErrNoFreeGameID = errors.New("no free game id")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager loads and stores boards by id. Every engine call runs under one
// lock, so a board is only ever touched by one caller at a time.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
	}
}

// GetOrCreateGame returns the stored board, or a fresh one when it does not exist.
// An empty id always creates a new board with a generated id.
func (that *GameManager) GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if id != "" {
		game, err := that.gameRepo.GetByID(ctx, id)
		if err == nil {
			return game, nil
		}

		if !errors.Is(err, apperror.ErrGameNotFound) {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}
	}

	return that.createGame(ctx, id)
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.getGameByID(ctx, id)
}

// MakeTurn applies a move for whoever's turn it is. On rejection the stored
// board is left alone and the current board is returned with the error.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err = game.ApplyMove(cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "status", game.Outcome.Status, "winner", game.Outcome.Winner)
	}

	return game, nil
}

func (that *GameManager) Restart(ctx context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) EndGame(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) createGame(ctx context.Context, id string) (*entity.Game, error) {
	if id == "" {
		var err error
		if id, err = that.freeGameID(ctx); err != nil {
			return nil, err
		}
	}

	game := entity.NewGame(id)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", id)

	return game, nil
}

// freeGameID draws ids until one is not used by a stored board.
func (that *GameManager) freeGameID(ctx context.Context) (string, error) {
	for range maxGameIDAttempts {
		id, err := pkg.GenerateGameID()
		if err != nil {
			return "", fmt.Errorf("error generating game ID: %w", err)
		}

		_, err = that.gameRepo.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrGameNotFound) {
			return id, nil
		}

		if err != nil {
			return "", fmt.Errorf("failed to check game ID: %w", err)
		}

		that.logger.Warn("generated game ID is taken", "gameID", id)
	}

	return "", ErrNoFreeGameID
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
