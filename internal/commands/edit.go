package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/parser"
	"github.com/balkashynov/latch/internal/stats"
)

var editCmd = &cobra.Command{
	Use:   "edit <feeding_id>",
	Short: "Edit a logged feeding",
	Long: `Edit a logged feeding. Only the flags you pass are changed.

--tags replaces the whole tag set; pass --tags "" to remove every tag.

Usage:
  latch edit 3f2a... --side right
  latch edit 3f2a... --end 08:40 --tags good,sleepy
  latch edit 3f2a... --clear-notes`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		req, err := updateRequest(cmd, a.now())
		if err != nil {
			return err
		}

		feeding, err := a.scope.Update(context.Background(), args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Updated %s feeding: %s (ID: %s)\n", feeding.Side.Label(), stats.FormatDuration(feeding.DurationSeconds), feeding.ID)
		return nil
	}),
}

func updateRequest(cmd *cobra.Command, now time.Time) (db.UpdateFeedingRequest, error) {
	var req db.UpdateFeedingRequest
	flags := cmd.Flags()

	if flags.Changed("side") {
		raw, _ := flags.GetString("side")
		side, err := parser.ParseSide(raw)
		if err != nil {
			return req, err
		}
		req.Side = &side
	}
	if flags.Changed("start") {
		raw, _ := flags.GetString("start")
		t, err := parser.ParseTime(raw, now)
		if err != nil {
			return req, err
		}
		req.StartedAt = &t
	}
	if flags.Changed("end") {
		raw, _ := flags.GetString("end")
		t, err := parser.ParseTime(raw, now)
		if err != nil {
			return req, err
		}
		req.EndedAt = &t
	}

	clearNotes, _ := flags.GetBool("clear-notes")
	switch {
	case clearNotes && flags.Changed("notes"):
		return req, fmt.Errorf("use either --notes or --clear-notes, not both")
	case clearNotes:
		empty := ""
		req.Notes = &empty
	case flags.Changed("notes"):
		raw, _ := flags.GetString("notes")
		notes := strings.TrimSpace(raw)
		req.Notes = &notes
	}

	if flags.Changed("tags") {
		tags, err := tagsFlag(cmd)
		if err != nil {
			return req, err
		}
		req.Tags = &tags
	}

	if req == (db.UpdateFeedingRequest{}) {
		return req, fmt.Errorf("nothing to change. Pass at least one of --side, --start, --end, --notes, --clear-notes, --tags")
	}
	return req, nil
}

func init() {
	editFlags(editCmd)
}

func editFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("side", "s", "", "Side: left|right")
	cmd.Flags().String("start", "", "Start time")
	cmd.Flags().String("end", "", "End time")
	cmd.Flags().StringP("notes", "n", "", "Replace the notes")
	cmd.Flags().Bool("clear-notes", false, "Remove the notes")
	cmd.Flags().StringP("tags", "t", "", "Replace the tags (comma-separated, empty for none)")
}
