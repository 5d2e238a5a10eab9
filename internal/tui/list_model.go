package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/latch/internal/clock"
	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/parser"
	"github.com/balkashynov/latch/internal/stats"
)

// Deleter removes a stored feeding
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// ListModel browses recent feedings
type ListModel struct {
	width  int
	height int

	feedings []models.Feeding
	selected int // index in feedings

	deleter       Deleter
	clock         clock.Clock
	confirmDelete bool
	deleted       int
	err           error

	// Pagination
	currentPage int
	perPage     int
}

// deletedMsg reports the outcome of a delete
type deletedMsg struct {
	id  string
	err error
}

// NewListModel creates a new list TUI model
func NewListModel(feedings []models.Feeding, deleter Deleter, clk clock.Clock) ListModel {
	if clk == nil {
		clk = clock.System{}
	}
	return ListModel{
		feedings: feedings,
		deleter:  deleter,
		clock:    clk,
		perPage:  10,
	}
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - title(2) - column header(1) - borders(2) - help(2) - margins(2)
		m.perPage = max(m.height-9, 3)
		m.currentPage = m.selected / m.perPage
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.deleted++
		m = m.removeFeeding(msg.id)
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			return m.handleConfirmKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			return m.moveSelection(-1), nil
		case "down", "j":
			return m.moveSelection(1), nil
		case "left", "h":
			return m.changePage(-1), nil
		case "right", "l":
			return m.changePage(1), nil
		case "d":
			if len(m.feedings) > 0 && m.deleter != nil {
				m.confirmDelete = true
			}
			return m, nil
		}
	}
	return m, nil
}

func (m ListModel) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = false
		id := m.feedings[m.selected].ID
		deleter := m.deleter
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			return deletedMsg{id: id, err: deleter.Delete(ctx, id)}
		}
	case "ctrl+c":
		return m, tea.Quit
	default:
		m.confirmDelete = false
		return m, nil
	}
}

func (m ListModel) moveSelection(delta int) ListModel {
	if len(m.feedings) == 0 {
		return m
	}
	m.selected = min(max(m.selected+delta, 0), len(m.feedings)-1)
	m.currentPage = m.selected / m.perPage
	return m
}

func (m ListModel) changePage(delta int) ListModel {
	pages := m.totalPages()
	if pages == 0 {
		return m
	}
	m.currentPage = min(max(m.currentPage+delta, 0), pages-1)
	m.selected = m.currentPage * m.perPage
	return m
}

func (m ListModel) totalPages() int {
	return (len(m.feedings) + m.perPage - 1) / m.perPage
}

func (m ListModel) removeFeeding(id string) ListModel {
	kept := make([]models.Feeding, 0, len(m.feedings))
	for _, f := range m.feedings {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	m.feedings = kept
	if m.selected >= len(kept) {
		m.selected = max(len(kept)-1, 0)
	}
	m.currentPage = m.selected / m.perPage
	return m
}

// View renders the TUI
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	if m.width < 90 {
		content = m.renderTable(m.width - 2)
	} else {
		leftWidth := m.width * 60 / 100
		rightWidth := m.width - leftWidth - 3
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderTable(leftWidth),
			" ",
			m.renderDetails(rightWidth),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		content,
		"",
		m.renderHelpBar(),
	)
}

// renderTable renders the current page of feedings
func (m ListModel) renderTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render(fmt.Sprintf("🍼 Feedings (%d)", len(m.feedings))))
	b.WriteString("\n\n")

	if len(m.feedings) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No feedings found"))
	} else {
		columnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorSecondaryText))
		b.WriteString(columnStyle.Render(fmt.Sprintf("  %-18s %-6s %-9s %s", "WHEN", "SIDE", "LENGTH", "TAGS")))
		b.WriteString("\n")

		now := m.clock.Now()
		start := m.currentPage * m.perPage
		end := min(start+m.perPage, len(m.feedings))
		for i := start; i < end; i++ {
			f := m.feedings[i]
			marker := "  "
			if i == m.selected {
				marker = "▸ "
			}
			side := lipgloss.NewStyle().Foreground(lipgloss.Color(SideColor(f.Side))).Render(fmt.Sprintf("%-6s", f.Side.Label()))
			row := fmt.Sprintf("%s%-18s %s %-9s %s",
				marker,
				parser.FormatWhen(f.StartedAt, now),
				side,
				stats.FormatDuration(f.DurationSeconds),
				hashTags(f.TagSet()))
			if i == m.selected {
				row = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}

		if pages := m.totalPages(); pages > 1 {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).
				Render(fmt.Sprintf("\nPage %d/%d", m.currentPage+1, pages)))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Width(width).
		Render(b.String())
}

// renderDetails renders the selected feeding
func (m ListModel) renderDetails(width int) string {
	var b strings.Builder

	if len(m.feedings) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width - 2).
			Render("latch"))
	} else {
		f := m.feedings[m.selected]
		loc := m.clock.Now().Location()

		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(SideColor(f.Side)))
		b.WriteString(titleStyle.Render(f.Side.Label() + " side"))
		b.WriteString("\n\n")

		label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		b.WriteString(label.Render("Started: ") + f.StartedAt.In(loc).Format("02/01/2006 15:04:05") + "\n")
		b.WriteString(label.Render("Ended:   ") + f.EndedAt.In(loc).Format("02/01/2006 15:04:05") + "\n")
		b.WriteString(label.Render("Length:  ") + stats.FormatDuration(f.DurationSeconds) + "\n")

		if tags := f.TagSet(); tags.Len() > 0 {
			chips := make([]string, 0, tags.Len())
			for _, t := range tags.Tags() {
				chips = append(chips, lipgloss.NewStyle().Foreground(lipgloss.Color(TagColor(t))).Render("#"+strings.ToLower(string(t))))
			}
			b.WriteString(label.Render("Tags:    ") + strings.Join(chips, " ") + "\n")
		}

		if notes := f.NotesText(); notes != "" {
			b.WriteString("\n")
			b.WriteString(label.Render("Notes:"))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSecondaryText)).
				Italic(true).
				Width(width - 4).
				Render(notes))
		}

		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("ID " + f.ID))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(width).
		Render(b.String())
}

// renderHelpBar renders the help bar with hotkey hints
func (m ListModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	switch {
	case m.confirmDelete:
		return helpStyle.Foreground(lipgloss.Color(ColorWarning)).Render("Delete this feeding? y confirm · any other key cancels")
	case m.err != nil:
		return helpStyle.Foreground(lipgloss.Color(ColorError)).Render("❌ " + m.err.Error())
	}
	return helpStyle.Render("↑/↓ nav · ←/→ page · d delete · q/esc quit")
}
