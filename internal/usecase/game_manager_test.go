package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
)

var (
	errRedisDown     = errors.New("redis down")
	errStorageIsFull = errors.New("storage is full")
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGameManager_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new game with a generated id", func(t *testing.T) {
		// Given: an empty store
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())

		// When: a game is requested without an id
		game, err := manager.GetOrCreateGame(ctx, "")

		// Then: a fresh board is created and stored
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.NewGame(game.ID), game)

		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Creates a missing game under the requested id", func(t *testing.T) {
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())

		game, err := manager.GetOrCreateGame(ctx, "kitchen-table")

		require.NoError(t, err)
		assert.Equal(t, "kitchen-table", game.ID)
	})

	t.Run("Returns the existing game", func(t *testing.T) {
		// Given: a game with a move already played
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())
		_, err := manager.GetOrCreateGame(ctx, "g1")
		require.NoError(t, err)
		_, err = manager.MakeTurn(ctx, "g1", 4)
		require.NoError(t, err)

		// When: the same id is requested
		game, err := manager.GetOrCreateGame(ctx, "g1")

		// Then: the stored board is returned
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[4])
	})

	t.Run("Returns error if gameRepo.GetByID fails", func(t *testing.T) {
		// Given: a repository that is down
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, "g1").Return(nil, errRedisDown).Once()
		manager := NewGameManager(newTestLogger(), repo)

		// When: the game is requested
		game, err := manager.GetOrCreateGame(ctx, "g1")

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
		repo.AssertExpectations(t)
	})

	t.Run("Returns error if gameRepo.CreateOrUpdate fails", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, "g1").Return(nil, apperror.ErrGameNotFound).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(errStorageIsFull).Once()
		manager := NewGameManager(newTestLogger(), repo)

		game, err := manager.GetOrCreateGame(ctx, "g1")

		require.ErrorIs(t, err, errStorageIsFull)
		assert.Nil(t, game)
		repo.AssertExpectations(t)
	})
}

func TestGameManager_GeneratedID(t *testing.T) {
	ctx := context.Background()

	t.Run("Draws again when the id is taken", func(t *testing.T) {
		// Given: the first generated id belongs to a live board
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("string")).Return(entity.NewGame("taken"), nil).Once()
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("string")).Return(nil, apperror.ErrGameNotFound).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		manager := NewGameManager(newTestLogger(), repo)

		// When: a game is created without an id
		game, err := manager.GetOrCreateGame(ctx, "")

		// Then: a second id is drawn and only the new board is written
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		repo.AssertNumberOfCalls(t, "GetByID", 2)
		repo.AssertNumberOfCalls(t, "CreateOrUpdate", 1)
		repo.AssertExpectations(t)
	})

	t.Run("Gives up when every id is taken", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("string")).Return(entity.NewGame("taken"), nil)
		manager := NewGameManager(newTestLogger(), repo)

		game, err := manager.GetOrCreateGame(ctx, "")

		require.ErrorIs(t, err, ErrNoFreeGameID)
		assert.Nil(t, game)
		repo.AssertNumberOfCalls(t, "GetByID", maxGameIDAttempts)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Returns error if the id lookup fails", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("string")).Return(nil, errRedisDown).Once()
		manager := NewGameManager(newTestLogger(), repo)

		game, err := manager.GetOrCreateGame(ctx, "")

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful turn is stored", func(t *testing.T) {
		// Given: a new game
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())
		_, err := manager.GetOrCreateGame(ctx, "g1")
		require.NoError(t, err)

		// When: X plays the centre
		game, err := manager.MakeTurn(ctx, "g1", 4)

		// Then: the move is applied and persisted
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, game.Turn)

		stored, err := manager.GetGame(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Rejected turn is not stored", func(t *testing.T) {
		// Given: a game where X played cell 0
		repo := &mockGameRepo{}
		game, err := entity.Replay("g1", []int{0})
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()
		manager := NewGameManager(newTestLogger(), repo)

		// When: O plays the same cell
		current, err := manager.MakeTurn(ctx, "g1", 0)

		// Then: the rejection is returned with the unchanged board and nothing is written
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.PlayerO, current.Turn)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("Error if game not found", func(t *testing.T) {
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())

		game, err := manager.MakeTurn(ctx, "missing", 0)

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, game)
	})

	t.Run("Error if the update fails", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, "g1").Return(entity.NewGame("g1"), nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()
		manager := NewGameManager(newTestLogger(), repo)

		game, err := manager.MakeTurn(ctx, "g1", 0)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
		repo.AssertExpectations(t)
	})
}

func TestGameManager_Restart(t *testing.T) {
	ctx := context.Background()

	// Given: a finished game
	manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())
	_, err := manager.GetOrCreateGame(ctx, "g1")
	require.NoError(t, err)
	for _, cell := range []int{0, 3, 1, 4, 2} {
		_, err = manager.MakeTurn(ctx, "g1", cell)
		require.NoError(t, err)
	}

	// When: the game is restarted
	game, err := manager.Restart(ctx, "g1")

	// Then: the stored board is back to the initial state
	require.NoError(t, err)
	assert.Equal(t, entity.NewGame("g1"), game)

	stored, err := manager.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, entity.NewGame("g1"), stored)
}

func TestGameManager_EndGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the game", func(t *testing.T) {
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())
		_, err := manager.GetOrCreateGame(ctx, "g1")
		require.NoError(t, err)

		require.NoError(t, manager.EndGame(ctx, "g1"))

		_, err = manager.GetGame(ctx, "g1")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Unknown game", func(t *testing.T) {
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository())

		err := manager.EndGame(ctx, "g1")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
