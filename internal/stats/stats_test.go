package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/models"
)

var loc = time.FixedZone("test", 2*60*60)

// now is mid-afternoon local time
var now = time.Date(2026, 3, 14, 15, 0, 0, 0, loc)

func feeding(startedAt time.Time, seconds int) models.Feeding {
	return models.Feeding{
		Side:            models.SideLeft,
		StartedAt:       startedAt,
		EndedAt:         startedAt.Add(time.Duration(seconds) * time.Second),
		DurationSeconds: seconds,
	}
}

func daysAgo(n int, hour int) time.Time {
	return time.Date(2026, 3, 14-n, hour, 0, 0, 0, loc)
}

func find(t *testing.T, all []WindowStats, label string) WindowStats {
	t.Helper()
	for _, ws := range all {
		if ws.Window.Label == label {
			return ws
		}
	}
	t.Fatalf("window %q missing", label)
	return WindowStats{}
}

func TestRange(t *testing.T) {
	tests := []struct {
		days      int
		wantStart time.Time
	}{
		{0, time.Date(2026, 3, 14, 0, 0, 0, 0, loc)},
		{3, time.Date(2026, 3, 11, 0, 0, 0, 0, loc)},
		{30, time.Date(2026, 2, 12, 0, 0, 0, 0, loc)},
	}
	wantEnd := time.Date(2026, 3, 14, 23, 59, 59, int(999*time.Millisecond), loc)
	for _, tt := range tests {
		start, end := Range(now, tt.days)
		if !start.Equal(tt.wantStart) {
			t.Errorf("Range(%d) start = %v, want %v", tt.days, start, tt.wantStart)
		}
		if !end.Equal(wantEnd) {
			t.Errorf("Range(%d) end = %v, want %v", tt.days, end, wantEnd)
		}
	}
}

func TestTodayScenario(t *testing.T) {
	feedings := []models.Feeding{
		feeding(daysAgo(0, 6), 600),
		feeding(daysAgo(0, 9), 300),
		feeding(daysAgo(0, 13), 900),
	}

	today := find(t, Compute(feedings, daysAgo(0, 6), true, now, DefaultWindows), "Today")

	if today.Sessions != 3 || today.TotalSeconds != 1800 || today.AverageSeconds != 600 || today.AvgSessionsPerDay != 3 {
		t.Fatalf("Today = %+v", today)
	}
	if !today.EnoughHistory {
		t.Fatalf("Today must always have enough history")
	}
}

func TestWindowMembershipIsInclusive(t *testing.T) {
	start, end := Range(now, 3)
	feedings := []models.Feeding{
		feeding(start, 60),
		feeding(end, 60),
		feeding(start.Add(-time.Millisecond), 60),
	}

	ws := find(t, Compute(feedings, start.Add(-time.Millisecond), true, now, DefaultWindows), "Last 3 Days")
	if ws.Sessions != 2 {
		t.Fatalf("Sessions = %d, want 2 (both bounds inclusive)", ws.Sessions)
	}
}

func TestMultiDayAverages(t *testing.T) {
	feedings := []models.Feeding{
		feeding(daysAgo(0, 8), 100),
		feeding(daysAgo(1, 8), 200),
		feeding(daysAgo(2, 8), 301),
		feeding(daysAgo(3, 8), 400),
		feeding(daysAgo(10, 8), 500),
	}
	all := Compute(feedings, daysAgo(40, 8), true, now, DefaultWindows)

	last3 := find(t, all, "Last 3 Days")
	if last3.Sessions != 4 || last3.TotalSeconds != 1001 {
		t.Fatalf("Last 3 Days = %+v", last3)
	}
	if last3.AverageSeconds != 250 {
		t.Fatalf("AverageSeconds = %d, want round(1001/4) = 250", last3.AverageSeconds)
	}
	if last3.AvgSessionsPerDay != 1.3 {
		t.Fatalf("AvgSessionsPerDay = %v, want 1.3", last3.AvgSessionsPerDay)
	}

	last30 := find(t, all, "Last 30 Days")
	if last30.Sessions != 5 || last30.AvgSessionsPerDay != 0.2 {
		t.Fatalf("Last 30 Days = %+v", last30)
	}
}

func TestEmptyWindowReportsZeros(t *testing.T) {
	all := Compute(nil, time.Time{}, false, now, DefaultWindows)
	if len(all) != len(DefaultWindows) {
		t.Fatalf("expected %d windows, got %d", len(DefaultWindows), len(all))
	}
	for _, ws := range all {
		if ws.Sessions != 0 || ws.TotalSeconds != 0 || ws.AverageSeconds != 0 || ws.AvgSessionsPerDay != 0 {
			t.Fatalf("%s = %+v, want zeros", ws.Window.Label, ws)
		}
		if want := ws.Window.Days == 0; ws.EnoughHistory != want {
			t.Fatalf("%s EnoughHistory = %v, want %v", ws.Window.Label, ws.EnoughHistory, want)
		}
	}
}

func TestNotEnoughHistory(t *testing.T) {
	earliest := now.Add(-2 * 24 * time.Hour)
	feedings := []models.Feeding{feeding(earliest, 600), feeding(daysAgo(0, 7), 300)}

	all := Compute(feedings, earliest, true, now, DefaultWindows)

	last7 := find(t, all, "Last 7 Days")
	if last7.EnoughHistory {
		t.Fatalf("Last 7 Days should lack history when logging began 2 days ago")
	}
	if last7.Sessions != 2 {
		t.Fatalf("statistics are still computed, got %d sessions", last7.Sessions)
	}
	if find(t, all, "Last 3 Days").EnoughHistory {
		t.Fatalf("Last 3 Days should lack history too")
	}
}

func TestEnoughHistoryBoundary(t *testing.T) {
	exactly := now.Add(-3 * 24 * time.Hour)
	if !enoughHistory(exactly, true, now, 3) {
		t.Fatalf("exactly 3 days of logging should be enough for a 3 day window")
	}
	if enoughHistory(exactly.Add(time.Second), true, now, 3) {
		t.Fatalf("just under 3 days should not be enough")
	}
}

type fakeLister struct {
	feedings []models.Feeding
	earliest time.Time
	ok       bool
	err      error
	opts     db.ListOptions
}

func (f *fakeLister) List(_ context.Context, opts db.ListOptions) ([]models.Feeding, error) {
	f.opts = opts
	return f.feedings, f.err
}

func (f *fakeLister) Earliest(context.Context) (time.Time, bool, error) {
	return f.earliest, f.ok, nil
}

func TestSummarize(t *testing.T) {
	lister := &fakeLister{
		feedings: []models.Feeding{feeding(daysAgo(0, 8), 600)},
		earliest: daysAgo(8, 8),
		ok:       true,
	}

	all, err := Summarize(context.Background(), lister, now)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if lister.opts.Limit != HistoryLimit {
		t.Fatalf("Limit = %d, want %d", lister.opts.Limit, HistoryLimit)
	}
	if !find(t, all, "Last 7 Days").EnoughHistory || find(t, all, "Last 30 Days").EnoughHistory {
		t.Fatalf("unexpected sufficiency flags: %+v", all)
	}

	lister.err = errors.New("boom")
	if _, err := Summarize(context.Background(), lister, now); err == nil {
		t.Fatalf("expected list error to propagate")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{
		0:    "0s",
		42:   "42s",
		303:  "5m 3s",
		3900: "1h 5m",
	}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		0:    "00:00",
		75:   "01:15",
		3725: "1:02:05",
	}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
