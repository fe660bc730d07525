package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve boards over REST and WebSocket",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		conf := initConfig()
		logger := initLogger(conf, os.Stdout)

		if err := app.RunApp(logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}
