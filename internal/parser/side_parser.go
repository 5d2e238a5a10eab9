package parser

import (
	"fmt"
	"strings"

	"github.com/balkashynov/latch/internal/models"
)

// ParseSide normalizes a side given on the command line
// Accepts formats like:
// - "l", "left", "LEFT" -> LEFT
// - "r", "right", "RIGHT" -> RIGHT
func ParseSide(input string) (models.Side, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "l", "left":
		return models.SideLeft, nil
	case "r", "right":
		return models.SideRight, nil
	case "":
		return "", fmt.Errorf("side is required. Use: left or right")
	default:
		return "", fmt.Errorf("invalid side %q. Use: left (l) or right (r)", input)
	}
}

// ParseTags splits a tag list such as "#good,cluster" or "good sleepy"
func ParseTags(input string) ([]models.Tag, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	tags := make([]models.Tag, 0, len(fields))
	for _, field := range fields {
		tag, err := models.ParseTag(field)
		if err != nil {
			return nil, fmt.Errorf("invalid tag %q. Use: %s", field, tagNames())
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func tagNames() string {
	names := make([]string, 0, len(models.AllTags))
	for _, t := range models.AllTags {
		names = append(names, strings.ToLower(string(t)))
	}
	return strings.Join(names, ", ")
}
