package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/stats"
)

const cardWidth = 32

// RenderStats renders one card per window. Windows without enough history
// say so instead of showing figures.
func RenderStats(all []stats.WindowStats, width int) string {
	cards := make([]string, 0, len(all))
	for _, ws := range all {
		cards = append(cards, renderCard(ws))
	}

	// Wrap cards on narrow terminals
	perRow := len(cards)
	if width > 0 && width < (cardWidth+4)*len(cards) {
		perRow = max(width/(cardWidth+4), 1)
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(ws stats.WindowStats) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(ws.Window.Label))
	b.WriteString("\n\n")

	if !ws.EnoughHistory {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Italic(true).
			Render("No data yet for this period."))
	} else {
		rows := [][2]string{
			{"Sessions", fmt.Sprintf("%d", ws.Sessions)},
			{"Total", stats.FormatDuration(ws.TotalSeconds)},
			{"Average", stats.FormatDuration(ws.AverageSeconds)},
			{"Per day", fmt.Sprintf("%.1f", ws.AvgSessionsPerDay)},
		}
		for i, row := range rows {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-9s", row[0])))
			b.WriteString(valueStyle.Render(row[1]))
			if i < len(rows)-1 {
				b.WriteString("\n")
			}
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Margin(0, 1, 0, 0).
		Width(cardWidth).
		Render(b.String())
}

// hashTags renders a tag set as "#good #cluster"
func hashTags(set models.TagSet) string {
	tags := set.Tags()
	if len(tags) == 0 {
		return "-"
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = "#" + strings.ToLower(string(t))
	}
	return strings.Join(names, " ")
}
