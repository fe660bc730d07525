package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy of the game", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		game, err := entity.Replay("123", []int{0, 1})
		require.NoError(t, err)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps mutating its own value
		_, err = game.ApplyMove(2)
		require.NoError(t, err)

		// Then: the stored board is unaffected
		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, stored.Board[2])
		assert.Equal(t, []int{0, 1}, stored.Moves)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123")))

		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))
		require.ErrorIs(t, gameRepo.DeleteByID(ctx, "123"), apperror.ErrGameNotFound)
	})
}
