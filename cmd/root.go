package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Two-player Tic Tac Toe on one board",
	Long: `tictactoe is a hotseat Tic Tac Toe: two players share one board
and take turns, X first.

Play in the terminal
	tictactoe play

Serve the board over REST and WebSocket
	tictactoe serve
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line. Startup failures panic and are recovered in main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (default ./config.yml)")

	rootCmd.AddCommand(playCmd, serveCmd)
}

// initialize config.
func initConfig() *config.Config {
	if configPath != "" {
		return config.MustLoad(configPath)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
