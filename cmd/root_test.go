package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
)

func TestPlayCommand(t *testing.T) {
	// Given: a config file using memory storage
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("log-level: error\nstorage: memory\nnotifier: toast\n"), 0o600))

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("5\n5\nq\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"play", "--config", path, "--notifier", "alert"})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	// When: the play command runs
	err := rootCmd.Execute()

	// Then: the flag overrides the configured notifier
	require.NoError(t, err)
	assert.Contains(t, out.String(), "| Game Info")
	assert.Contains(t, out.String(), "This box is already filled! 🚫")
}

func TestInitLogger(t *testing.T) {
	var out bytes.Buffer

	logger := initLogger(&config.Config{LogLevel: "warn"}, &out)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
