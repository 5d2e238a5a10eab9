package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/parser"
	"github.com/balkashynov/latch/internal/stats"
	"github.com/balkashynov/latch/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List feedings",
	Long:    "List recent feedings, newest first, optionally filtered by tag",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		opts := db.ListOptions{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		if opts.Limit <= 0 {
			return fmt.Errorf("--limit must be a positive integer")
		}
		if raw, _ := cmd.Flags().GetString("tag"); raw != "" {
			tag, err := models.ParseTag(raw)
			if err != nil {
				return err
			}
			opts.Tag = &tag
		}

		feedings, err := a.scope.List(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("fetching feedings: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(feedings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		if ui, _ := cmd.Flags().GetBool("ui"); ui {
			return tui.RunListTUI(feedings, a.scope, a.clock)
		}

		if len(feedings) == 0 {
			fmt.Println("No feedings found. Use 'latch feed' or 'latch add \"left 15m\"' to log your first one.")
			return nil
		}

		// Print table header
		fmt.Printf("%-36s %-18s %-6s %-9s %-24s %s\n", "ID", "WHEN", "SIDE", "LENGTH", "TAGS", "NOTES")
		fmt.Println(strings.Repeat("-", 110))

		now := a.now()
		for _, f := range feedings {
			var tagNames []string
			for _, t := range f.TagSet().Tags() {
				tagNames = append(tagNames, strings.ToLower(string(t)))
			}

			notes := truncateNotes(f.NotesText(), 30)

			fmt.Printf("%-36s %-18s %-6s %-9s %-24s %s\n",
				f.ID,
				parser.FormatWhen(f.StartedAt, now),
				f.Side.Label(),
				stats.FormatDuration(f.DurationSeconds),
				strings.Join(tagNames, ","),
				notes)
		}
		return nil
	}),
}

// truncateNotes shortens notes to at most limit runes for the table
func truncateNotes(notes string, limit int) string {
	runes := []rune(notes)
	if len(runes) <= limit {
		return notes
	}
	return string(runes[:limit-3]) + "..."
}

func init() {
	listCmd.Flags().IntP("limit", "l", 20, "Maximum number of feedings to show")
	listCmd.Flags().StringP("tag", "t", "", "Only feedings with this tag")
	listCmd.Flags().Bool("json", false, "JSON output")
	listCmd.Flags().BoolP("ui", "i", false, "Browse in the interactive list")
}
