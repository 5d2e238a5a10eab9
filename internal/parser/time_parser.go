package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateTimeRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{2})$`)
	clockRegex    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	agoRegex      = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minute|minutes|h|hour|hours)\s+ago$`)
	durationRegex = regexp.MustCompile(`^(?:(\d+)h)?\s*(?:(\d+)m)?\s*(?:(\d+)s)?$`)
)

// ParseTime parses an instant relative to now, in now's location
// Supported formats:
// - RFC3339 (e.g., "2026-03-14T08:00:00Z")
// - dd/mm/yyyy HH:MM (e.g., "14/03/2026 08:00")
// - HH:MM today (e.g., "08:15")
// - X minutes/hours ago (e.g., "20 minutes ago", "1h ago")
// - "now"
func ParseTime(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("time is required")
	}
	if input == "now" {
		return now, nil
	}

	if t, err := time.Parse(time.RFC3339, strings.ToUpper(input)); err == nil {
		return t, nil
	}
	if t, err := parseDateTime(input, now.Location()); err == nil {
		return t, nil
	}
	if t, err := parseClock(input, now); err == nil {
		return t, nil
	}
	if t, err := parseAgo(input, now); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time %q. Use: HH:MM, dd/mm/yyyy HH:MM, X minutes ago, or RFC3339", input)
}

// parseDateTime parses dd/mm/yyyy HH:MM
func parseDateTime(input string, loc *time.Location) (time.Time, error) {
	matches := dateTimeRegex.FindStringSubmatch(input)
	if len(matches) != 6 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	nums := make([]int, 5)
	for i := range nums {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid number")
		}
		nums[i] = n
	}
	day, month, year, hour, minute := nums[0], nums[1], nums[2], nums[3], nums[4]

	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day")
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	return t, nil
}

// parseClock parses HH:MM on now's calendar day
func parseClock(input string, now time.Time) (time.Time, error) {
	matches := clockRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid clock format")
	}
	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day")
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, now.Location()), nil
}

// parseAgo parses "X minutes ago" and "X hours ago"
func parseAgo(input string, now time.Time) (time.Time, error) {
	matches := agoRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "m", "min", "mins", "minute", "minutes":
		if amount > 24*60 {
			return time.Time{}, fmt.Errorf("minutes must be at most 1440")
		}
		return now.Add(-time.Duration(amount) * time.Minute), nil
	default:
		if amount > 24*30 {
			return time.Time{}, fmt.Errorf("hours must be at most 720")
		}
		return now.Add(-time.Duration(amount) * time.Hour), nil
	}
}

// ParseDuration parses short durations like "15m", "1h5m" or "90s"
func ParseDuration(input string) (time.Duration, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	matches := durationRegex.FindStringSubmatch(input)
	if input == "" || matches == nil {
		return 0, fmt.Errorf("invalid duration %q. Use: 15m, 1h5m, or 90s", input)
	}

	var d time.Duration
	for i, unit := range []time.Duration{time.Hour, time.Minute, time.Second} {
		if matches[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid number")
		}
		d += time.Duration(n) * unit
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}

// FormatWhen formats a feeding start for lists, relative to now's day
func FormatWhen(t, now time.Time) string {
	t = t.In(now.Location())

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	daysDiff := int(math.Round(today.Sub(day).Hours() / 24))

	switch {
	case daysDiff == 0:
		return "Today " + t.Format("15:04")
	case daysDiff == 1:
		return "Yesterday " + t.Format("15:04")
	default:
		return t.Format("02/01/2006 15:04")
	}
}
