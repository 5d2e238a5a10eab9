// Package stats summarises a feeding history over fixed trailing windows
// of local calendar days.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/models"
)

// HistoryLimit bounds the history fetched for a summary. It comfortably
// covers the longest window at any realistic feeding frequency.
const HistoryLimit = 10000

// Window is a trailing range of Days calendar days ending today.
// Days == 0 means today only.
type Window struct {
	Label string `json:"label"`
	Days  int    `json:"days"`
}

// DefaultWindows in display order
var DefaultWindows = []Window{
	{Label: "Today", Days: 0},
	{Label: "Last 3 Days", Days: 3},
	{Label: "Last 7 Days", Days: 7},
	{Label: "Last 30 Days", Days: 30},
}

// WindowStats are the figures for one window. EnoughHistory separates "no
// feedings happened" from "logging has not gone on long enough for this
// window to mean anything".
type WindowStats struct {
	Window            Window    `json:"window"`
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	Sessions          int       `json:"sessions"`
	TotalSeconds      int       `json:"totalSeconds"`
	AverageSeconds    int       `json:"averageSeconds"`
	AvgSessionsPerDay float64   `json:"avgSessionsPerDay"`
	EnoughHistory     bool      `json:"enoughHistory"`
}

// Lister is the read side of the record store used for summaries
type Lister interface {
	List(ctx context.Context, opts db.ListOptions) ([]models.Feeding, error)
	Earliest(ctx context.Context) (time.Time, bool, error)
}

// Range returns the inclusive bounds of a window of days ending on now's
// calendar day, in now's location.
func Range(now time.Time, days int) (start, end time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	start = time.Date(y, m, d-days, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// Compute summarises feedings for each window. earliest is the owner's
// first-ever feeding start; hasHistory is false when there is none.
func Compute(feedings []models.Feeding, earliest time.Time, hasHistory bool, now time.Time, windows []Window) []WindowStats {
	out := make([]WindowStats, 0, len(windows))
	for _, w := range windows {
		out = append(out, computeWindow(feedings, earliest, hasHistory, now, w))
	}
	return out
}

func computeWindow(feedings []models.Feeding, earliest time.Time, hasHistory bool, now time.Time, w Window) WindowStats {
	start, end := Range(now, w.Days)
	ws := WindowStats{
		Window:        w,
		Start:         start,
		End:           end,
		EnoughHistory: enoughHistory(earliest, hasHistory, now, w.Days),
	}

	for _, f := range feedings {
		if f.StartedAt.Before(start) || f.StartedAt.After(end) {
			continue
		}
		ws.Sessions++
		ws.TotalSeconds += f.DurationSeconds
	}

	if ws.Sessions > 0 {
		ws.AverageSeconds = int(math.Round(float64(ws.TotalSeconds) / float64(ws.Sessions)))
		days := max(w.Days, 1)
		ws.AvgSessionsPerDay = math.Round(float64(ws.Sessions)/float64(days)*10) / 10
	}
	return ws
}

// enoughHistory holds for today, and for longer windows once the first
// feeding is at least that many whole days old.
func enoughHistory(earliest time.Time, hasHistory bool, now time.Time, days int) bool {
	if days == 0 {
		return true
	}
	if !hasHistory {
		return false
	}
	return !earliest.After(now.Add(-time.Duration(days) * 24 * time.Hour))
}

// Summarize loads the owner's history and computes the default windows
func Summarize(ctx context.Context, store Lister, now time.Time) ([]WindowStats, error) {
	feedings, err := store.List(ctx, db.ListOptions{Limit: HistoryLimit})
	if err != nil {
		return nil, fmt.Errorf("load feedings: %w", err)
	}
	earliest, ok, err := store.Earliest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load earliest feeding: %w", err)
	}
	return Compute(feedings, earliest, ok, now, DefaultWindows), nil
}

// FormatDuration renders seconds as "1h 5m", "5m 3s" or "42s"
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatClock renders seconds as a stopwatch reading, MM:SS or H:MM:SS
func FormatClock(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
