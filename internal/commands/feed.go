package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/parser"
	"github.com/balkashynov/latch/internal/tui"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Time a feeding with the interactive timer",
	Long: `Open the feeding timer. Pick a side to start, stop to review,
tag the session and save it.

Examples:
  latch feed            # Choose the side in the timer
  latch feed --side l   # Start timing the left side right away`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		var side models.Side
		if raw, _ := cmd.Flags().GetString("side"); raw != "" {
			var err error
			if side, err = parser.ParseSide(raw); err != nil {
				return err
			}
		}

		return tui.RunTimerTUI(a.scope, a.clock, side)
	}),
}

func init() {
	feedCmd.Flags().StringP("side", "s", "", "Start immediately on this side: left|right")
}
