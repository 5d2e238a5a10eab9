package tui

import "github.com/balkashynov/latch/internal/models"

// Color constants for latch TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, accent elements, active borders
	ColorAccentBright = "#A78BFA" // Highlights, running clock

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B" // Paused clock

	// Side Colors
	ColorLeft  = "#38BDF8"
	ColorRight = "#F472B6"
)

// SideColor returns the accent used for a side
func SideColor(side models.Side) string {
	switch side {
	case models.SideLeft:
		return ColorLeft
	case models.SideRight:
		return ColorRight
	default:
		return ColorDisabledText
	}
}

// TagColor returns the accent used for a tag chip
func TagColor(tag models.Tag) string {
	switch tag {
	case models.TagGood:
		return ColorSuccess
	case models.TagMedium:
		return ColorWarning
	case models.TagBad:
		return ColorError
	default:
		return ColorAccentBright
	}
}
