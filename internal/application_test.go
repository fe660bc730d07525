package application

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/notifier"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewGameRepository(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	t.Run("Memory", func(t *testing.T) {
		repo, closeRepo, err := newGameRepository(ctx, logger, &config.Config{Storage: config.StorageMemory})
		require.NoError(t, err)
		defer closeRepo()

		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("g1")))

		game, err := repo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("g1"), game)
	})

	t.Run("Redis without a host", func(t *testing.T) {
		_, _, err := newGameRepository(ctx, logger, &config.Config{Storage: config.StorageRedis})

		require.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		_, _, err := newGameRepository(ctx, logger, &config.Config{Storage: "postgres"})

		require.ErrorIs(t, err, ErrUnknownStorage)
	})
}

func TestRunTerminal(t *testing.T) {
	t.Run("Plays with the alert notifier", func(t *testing.T) {
		// Given: an alert notifier in memory storage
		conf := &config.Config{Storage: config.StorageMemory, Notifier: notifier.KindAlert}
		var out bytes.Buffer

		// When: X wins on the left column
		err := RunTerminal(newTestLogger(), conf, strings.NewReader("1\n2\n4\n5\n7\nq\n"), &out)

		// Then: the win is shown in a dialog
		require.NoError(t, err)
		assert.Contains(t, out.String(), "| Game Info")
		assert.Contains(t, out.String(), "X won the game! 🏆")
	})

	t.Run("Unknown notifier", func(t *testing.T) {
		conf := &config.Config{Storage: config.StorageMemory, Notifier: "pigeon"}

		err := RunTerminal(newTestLogger(), conf, strings.NewReader(""), io.Discard)

		require.ErrorIs(t, err, notifier.ErrUnknownKind)
	})
}
