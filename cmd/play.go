package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/notifier"
)

var notifierKind string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on this terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conf := initConfig()
		if cmd.Flags().Changed("notifier") {
			conf.Notifier = notifierKind
		}

		// the board owns stdout
		logger := initLogger(conf, os.Stderr)

		if err := app.RunTerminal(logger, conf, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("game failed: %w", err)
		}

		return nil
	},
}

func init() {
	playCmd.Flags().StringVarP(&notifierKind, "notifier", "n", notifier.KindToast,
		fmt.Sprintf("How messages are shown: %s or %s", notifier.KindToast, notifier.KindAlert))
}
