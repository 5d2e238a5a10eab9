package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/latch/internal/models"
)

// ParsedEntry represents a feeding described in one line of text
type ParsedEntry struct {
	Side     models.Side
	Duration time.Duration
	Tags     []models.Tag
	Notes    string
	Errors   []string
}

var (
	entryTagRegex      = regexp.MustCompile(`#([a-zA-Z,]+)`)
	entryDurationRegex = regexp.MustCompile(`(?i)\b(\d+h\d+m|\d+h|\d+m|\d+s)\b`)
)

// ParseEntry extracts a quick-logged feeding from natural syntax
// Syntax: "left 15m #good,sleepy fell asleep at the end"
// The first word is the side, the first duration token is the length, tags
// are prefixed with '#' and whatever remains becomes the notes.
func ParseEntry(input string) ParsedEntry {
	result := ParsedEntry{
		Tags:   []models.Tag{},
		Errors: []string{},
	}

	fields := strings.Fields(input)
	if len(fields) == 0 {
		result.Errors = append(result.Errors, "Missing side. Use: left or right")
		return result
	}
	side, err := ParseSide(fields[0])
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Side = side
		input = strings.Join(fields[1:], " ")
	}

	// Extract tags (#good,sleepy or #good #sleepy)
	for _, match := range entryTagRegex.FindAllStringSubmatch(input, -1) {
		tags, err := ParseTags(match[1])
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Tags = append(result.Tags, tags...)
	}
	input = entryTagRegex.ReplaceAllString(input, "")

	// Extract duration (15m, 1h5m, 90s)
	if match := entryDurationRegex.FindString(input); match != "" {
		d, err := ParseDuration(match)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Duration = d
		}
		input = strings.Replace(input, match, "", 1)
	} else {
		result.Errors = append(result.Errors, "Missing duration. Use: 15m, 1h5m, or 90s")
	}

	// Clean up the notes (remove extra spaces)
	result.Notes = strings.Join(strings.Fields(input), " ")

	return result
}

// Valid reports whether the entry parsed without errors
func (e ParsedEntry) Valid() bool {
	return len(e.Errors) == 0
}
