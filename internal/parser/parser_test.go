package parser

import (
	"testing"
	"time"

	"github.com/balkashynov/latch/internal/models"
)

var loc = time.FixedZone("test", 2*60*60)

var now = time.Date(2026, 3, 14, 15, 30, 0, 0, loc)

func TestParseSide(t *testing.T) {
	tests := []struct {
		input   string
		want    models.Side
		wantErr bool
	}{
		{"l", models.SideLeft, false},
		{"Left", models.SideLeft, false},
		{" RIGHT ", models.SideRight, false},
		{"r", models.SideRight, false},
		{"", "", true},
		{"middle", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSide(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSide(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input   string
		want    []models.Tag
		wantErr bool
	}{
		{"", []models.Tag{}, false},
		{"#good,cluster", []models.Tag{models.TagGood, models.TagCluster}, false},
		{"sleepy bad", []models.Tag{models.TagSleepy, models.TagBad}, false},
		{"good, #MEDIUM", []models.Tag{models.TagGood, models.TagMedium}, false},
		{"good,hungry", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseTags(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTags(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"now", now},
		{"2026-03-14T08:00:00Z", time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)},
		{"14/03/2026 08:05", time.Date(2026, 3, 14, 8, 5, 0, 0, loc)},
		{"1/2/2026 23:59", time.Date(2026, 2, 1, 23, 59, 0, 0, loc)},
		{"08:15", time.Date(2026, 3, 14, 8, 15, 0, 0, loc)},
		{"20 minutes ago", now.Add(-20 * time.Minute)},
		{"5m ago", now.Add(-5 * time.Minute)},
		{"2 hours ago", now.Add(-2 * time.Hour)},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.input, now)
		if err != nil {
			t.Errorf("ParseTime(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTimeRejects(t *testing.T) {
	for _, input := range []string{"", "yesterday", "31/02/2026 10:00", "25:00", "12:61", "5000 minutes ago"} {
		if _, err := ParseTime(input, now); err == nil {
			t.Errorf("ParseTime(%q) expected error", input)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := map[string]time.Duration{
		"15m":   15 * time.Minute,
		"1h5m":  time.Hour + 5*time.Minute,
		"90s":   90 * time.Second,
		"2h":    2 * time.Hour,
		"1h 5m": time.Hour + 5*time.Minute,
	}
	for input, want := range tests {
		got, err := ParseDuration(input)
		if err != nil {
			t.Errorf("ParseDuration(%q) unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDuration(%q) = %v, want %v", input, got, want)
		}
	}

	for _, input := range []string{"", "0m", "fifteen", "15x"} {
		if _, err := ParseDuration(input); err == nil {
			t.Errorf("ParseDuration(%q) expected error", input)
		}
	}
}

func TestParseEntry(t *testing.T) {
	entry := ParseEntry("left 15m #good,sleepy fell asleep at the end")
	if !entry.Valid() {
		t.Fatalf("unexpected errors: %v", entry.Errors)
	}
	if entry.Side != models.SideLeft || entry.Duration != 15*time.Minute {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if len(entry.Tags) != 2 || entry.Tags[0] != models.TagGood || entry.Tags[1] != models.TagSleepy {
		t.Fatalf("Tags = %v", entry.Tags)
	}
	if entry.Notes != "fell asleep at the end" {
		t.Fatalf("Notes = %q", entry.Notes)
	}

	entry = ParseEntry("r 1h5m")
	if !entry.Valid() || entry.Side != models.SideRight || entry.Duration != time.Hour+5*time.Minute || entry.Notes != "" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestParseEntryCollectsErrors(t *testing.T) {
	tests := map[string]int{
		"":                 1,
		"middle 10m":       1,
		"left":             1,
		"left 10m #hungry": 1,
		"up #hungry":       3,
	}
	for input, wantErrs := range tests {
		if got := ParseEntry(input); len(got.Errors) != wantErrs {
			t.Errorf("ParseEntry(%q) errors = %v, want %d", input, got.Errors, wantErrs)
		}
	}
}

func TestFormatWhen(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 3, 14, 8, 5, 0, 0, loc), "Today 08:05"},
		{time.Date(2026, 3, 13, 23, 10, 0, 0, loc), "Yesterday 23:10"},
		{time.Date(2026, 3, 10, 6, 0, 0, 0, loc), "10/03/2026 06:00"},
		{time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC), "Today 08:00"},
	}
	for _, tt := range tests {
		if got := FormatWhen(tt.at, now); got != tt.want {
			t.Errorf("FormatWhen(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}
