package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/parser"
	"github.com/balkashynov/latch/internal/stats"
)

var addCmd = &cobra.Command{
	Use:   "add [entry]",
	Short: "Log a feeding after the fact",
	Long: `Log a feeding that was not timed with 'latch feed'.

Modes:
  Quick: latch add "left 15m #good fell asleep"   (ends now unless --end is given)
  Flags: latch add --side r --start 08:10 --end 08:25 --tags good,sleepy

Quick syntax:
  left|right      - Side (first word, l and r work too)
  15m, 1h5m, 90s  - Length of the feeding
  #tag1,tag2      - Tags: good, medium, bad, cluster, sleepy
  anything else   - Notes`,
	Args: cobra.ArbitraryArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		var (
			req db.CreateFeedingRequest
			err error
		)
		if len(args) > 0 {
			req, err = quickRequest(cmd, strings.Join(args, " "), a.now())
		} else {
			req, err = flagRequest(cmd, a.now())
		}
		if err != nil {
			return err
		}

		feeding, err := a.scope.Create(context.Background(), req)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Logged %s feeding: %s (ID: %s)\n", feeding.Side.Label(), stats.FormatDuration(feeding.DurationSeconds), feeding.ID)
		return nil
	}),
}

// quickRequest builds a request from the one-line syntax
func quickRequest(cmd *cobra.Command, entry string, now time.Time) (db.CreateFeedingRequest, error) {
	parsed := parser.ParseEntry(entry)
	if !parsed.Valid() {
		return db.CreateFeedingRequest{}, fmt.Errorf("found issues with parsing: %s", strings.Join(parsed.Errors, ", "))
	}

	end := now
	if raw, _ := cmd.Flags().GetString("end"); raw != "" {
		var err error
		if end, err = parser.ParseTime(raw, now); err != nil {
			return db.CreateFeedingRequest{}, err
		}
	}
	start := end.Add(-parsed.Duration)

	return db.CreateFeedingRequest{
		Side:      parsed.Side,
		StartedAt: &start,
		EndedAt:   &end,
		Notes:     parsed.Notes,
		Tags:      parsed.Tags,
	}, nil
}

// flagRequest builds a request from --side, --start, --end/--duration,
// --notes and --tags
func flagRequest(cmd *cobra.Command, now time.Time) (db.CreateFeedingRequest, error) {
	rawSide, _ := cmd.Flags().GetString("side")
	side, err := parser.ParseSide(rawSide)
	if err != nil {
		return db.CreateFeedingRequest{}, err
	}

	rawStart, _ := cmd.Flags().GetString("start")
	if rawStart == "" {
		return db.CreateFeedingRequest{}, fmt.Errorf("--start is required (or use the quick syntax: latch add \"left 15m\")")
	}
	start, err := parser.ParseTime(rawStart, now)
	if err != nil {
		return db.CreateFeedingRequest{}, err
	}

	end := now
	rawEnd, _ := cmd.Flags().GetString("end")
	rawDuration, _ := cmd.Flags().GetString("duration")
	switch {
	case rawEnd != "" && rawDuration != "":
		return db.CreateFeedingRequest{}, fmt.Errorf("use either --end or --duration, not both")
	case rawEnd != "":
		if end, err = parser.ParseTime(rawEnd, now); err != nil {
			return db.CreateFeedingRequest{}, err
		}
	case rawDuration != "":
		d, err := parser.ParseDuration(rawDuration)
		if err != nil {
			return db.CreateFeedingRequest{}, err
		}
		end = start.Add(d)
	}

	tags, err := tagsFlag(cmd)
	if err != nil {
		return db.CreateFeedingRequest{}, err
	}
	notes, _ := cmd.Flags().GetString("notes")

	return db.CreateFeedingRequest{
		Side:      side,
		StartedAt: &start,
		EndedAt:   &end,
		Notes:     strings.TrimSpace(notes),
		Tags:      tags,
	}, nil
}

func tagsFlag(cmd *cobra.Command) ([]models.Tag, error) {
	raw, _ := cmd.Flags().GetString("tags")
	return parser.ParseTags(raw)
}

func init() {
	addFlags(addCmd)
}

func addFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("side", "s", "", "Side: left|right")
	cmd.Flags().String("start", "", "Start time (HH:MM, dd/mm/yyyy HH:MM, 20 minutes ago)")
	cmd.Flags().String("end", "", "End time (default now)")
	cmd.Flags().StringP("duration", "d", "", "Length instead of --end (15m, 1h5m)")
	cmd.Flags().StringP("notes", "n", "", "Notes")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags: good,medium,bad,cluster,sleepy")
}
