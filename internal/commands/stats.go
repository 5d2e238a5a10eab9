package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/parser"
	"github.com/balkashynov/latch/internal/stats"
	"github.com/balkashynov/latch/internal/tui"
)

// statsWidth keeps the cards two to a row on a standard terminal
const statsWidth = 80

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show feeding statistics",
	Long: `Show session counts and durations for today and the last 3, 7 and 30 days.

Longer windows stay empty until you have been logging for that many days.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := context.Background()
		now := a.now()

		all, err := stats.Summarize(ctx, a.scope, now)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(all, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Println(tui.RenderStats(all, statsWidth))

		latest, err := a.scope.List(ctx, db.ListOptions{Limit: 1})
		if err != nil {
			return err
		}
		if len(latest) > 0 {
			last := latest[0]
			fmt.Printf("\n🍼 Last feeding: %s on the %s (%s ago)\n",
				parser.FormatWhen(last.StartedAt, now),
				last.Side.Label(),
				stats.FormatDuration(max(int(now.Sub(last.EndedAt).Seconds()), 0)))
		}
		return nil
	}),
}

func init() {
	statsCmd.Flags().Bool("json", false, "JSON output")
}
