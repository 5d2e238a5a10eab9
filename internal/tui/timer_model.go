package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/latch/internal/clock"
	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/stats"
	"github.com/balkashynov/latch/internal/timer"
)

const saveTimeout = 10 * time.Second

// TimerModel drives a SessionTimer from key presses and a 1 Hz tick
type TimerModel struct {
	width  int
	height int

	timer   *timer.SessionTimer
	creator timer.Creator
	clock   clock.Clock

	// generation invalidates ticks scheduled before the last start, stop
	// or resume, so at most one tick chain feeds the timer.
	generation int

	notes        textinput.Model
	editingNotes bool
	saving       bool
	shimmer      *Shimmer

	saved    []*models.Feeding
	err      error
	quitting bool
}

// timerTickMsg is sent every second while running
type timerTickMsg struct {
	generation int
}

// shimmerTickMsg advances the header highlight
type shimmerTickMsg struct {
	generation int
}

// savedMsg reports the outcome of an asynchronous save
type savedMsg struct {
	feeding *models.Feeding
	err     error
}

// NewTimerModel creates an idle timer model that saves through creator
func NewTimerModel(creator timer.Creator, clk clock.Clock) TimerModel {
	if clk == nil {
		clk = clock.System{}
	}
	notes := textinput.New()
	notes.Placeholder = "notes (optional)"
	notes.CharLimit = 500
	notes.Width = 40

	return TimerModel{
		timer:   timer.New(clk),
		creator: creator,
		clock:   clk,
		notes:   notes,
		shimmer: NewShimmer(DefaultShimmerConfig()),
	}
}

// StartOn starts the timer before the program runs, used by `feed --side`
func (m TimerModel) StartOn(side models.Side) (TimerModel, error) {
	if err := m.timer.Start(side); err != nil {
		return m, err
	}
	m.generation++
	m.shimmer.SetActive(true)
	return m, nil
}

// Init initializes the timer model
func (m TimerModel) Init() tea.Cmd {
	if m.timer.State() == timer.Running {
		return tea.Batch(m.tick(), m.shimmerTick())
	}
	return nil
}

func (m TimerModel) tick() tea.Cmd {
	gen := m.generation
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{generation: gen}
	})
}

func (m TimerModel) shimmerTick() tea.Cmd {
	if !m.shimmer.Active() {
		return nil
	}
	gen := m.generation
	return tea.Tick(m.shimmer.Interval(), func(time.Time) tea.Msg {
		return shimmerTickMsg{generation: gen}
	})
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if msg.generation != m.generation || m.timer.State() != timer.Running {
			return m, nil
		}
		_ = m.timer.Tick()
		return m, m.tick()

	case shimmerTickMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.shimmer.Advance(m.clock.Now(), len([]rune(m.headerText())))
		return m, m.shimmerTick()

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		_ = m.timer.Commit()
		m.saved = append(m.saved, msg.feeding)
		m.err = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.saving {
			return m, nil
		}
		if m.editingNotes {
			return m.handleNotesKeys(msg)
		}
		switch m.timer.State() {
		case timer.Idle:
			return m.handleIdleKeys(msg)
		case timer.Running:
			return m.handleRunningKeys(msg)
		case timer.Stopped:
			return m.handleStoppedKeys(msg)
		}
	}

	return m, nil
}

func (m TimerModel) handleIdleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "l", "L":
		return m.start(models.SideLeft)
	case "r", "R":
		return m.start(models.SideRight)
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m TimerModel) handleRunningKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "s", " ":
		m.err = m.timer.Stop()
		m.generation++
		m.shimmer.SetActive(false)
		return m, nil
	case "x", "esc":
		return m.cancel()
	case "n":
		return m.editNotes()
	default:
		return m.toggleTag(key)
	}
}

func (m TimerModel) handleStoppedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "r", " ":
		if m.err = m.timer.Resume(); m.err != nil {
			return m, nil
		}
		m.generation++
		m.shimmer.SetActive(true)
		return m, tea.Batch(m.tick(), m.shimmerTick())
	case "enter":
		return m.save()
	case "x", "esc":
		return m.cancel()
	case "n":
		return m.editNotes()
	default:
		return m.toggleTag(key)
	}
}

func (m TimerModel) handleNotesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.err = m.timer.SetNotes(strings.TrimSpace(m.notes.Value()))
		m.editingNotes = false
		m.notes.Blur()
		return m, nil
	case "esc":
		m.editingNotes = false
		m.notes.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m TimerModel) start(side models.Side) (tea.Model, tea.Cmd) {
	next, err := m.StartOn(side)
	if err != nil {
		m.err = err
		return m, nil
	}
	next.err = nil
	return next, tea.Batch(next.tick(), next.shimmerTick())
}

func (m TimerModel) cancel() (tea.Model, tea.Cmd) {
	m.err = m.timer.Cancel()
	m.generation++
	m.shimmer.SetActive(false)
	m.notes.SetValue("")
	return m, nil
}

func (m TimerModel) editNotes() (tea.Model, tea.Cmd) {
	m.editingNotes = true
	m.notes.SetValue(m.timer.Notes())
	m.notes.CursorEnd()
	cmd := m.notes.Focus()
	return m, cmd
}

// toggleTag maps the number keys to the tag vocabulary
func (m TimerModel) toggleTag(key string) (tea.Model, tea.Cmd) {
	if len(key) != 1 || key[0] < '1' || int(key[0]-'1') >= len(models.AllTags) {
		return m, nil
	}
	m.err = m.timer.ToggleTag(models.AllTags[key[0]-'1'])
	return m, nil
}

// save validates synchronously and runs the create call off the update loop
func (m TimerModel) save() (tea.Model, tea.Cmd) {
	req, err := m.timer.PrepareSave()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.saving = true
	m.err = nil
	creator := m.creator
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		feeding, err := creator.Create(ctx, req)
		return savedMsg{feeding: feeding, err: err}
	}
}

// Saved returns the feedings stored during this run
func (m TimerModel) Saved() []*models.Feeding {
	return m.saved
}

// Timer exposes the underlying state machine
func (m TimerModel) Timer() *timer.SessionTimer {
	return m.timer
}

func (m TimerModel) headerText() string {
	switch m.timer.State() {
	case timer.Running:
		return fmt.Sprintf("FEEDING · %s", strings.ToUpper(m.timer.Side().Label()))
	case timer.Stopped:
		return fmt.Sprintf("PAUSED · %s", strings.ToUpper(m.timer.Side().Label()))
	default:
		return "READY TO FEED"
	}
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	var components []string
	components = append(components, m.renderHeader())
	components = append(components, m.renderBigClock())
	components = append(components, m.renderTags())
	components = append(components, m.renderNotes())
	if status := m.renderStatus(); status != "" {
		components = append(components, status)
	}

	panel := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

func (m TimerModel) renderHeader() string {
	text := m.headerText()
	if m.timer.State() == timer.Running {
		return m.shimmer.Render(text)
	}
	color := ColorSecondaryText
	if m.timer.State() == timer.Stopped {
		color = ColorWarning
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(text)
}

// ASCII art for digits (5x5 characters each)
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders the elapsed seconds as ASCII art
func (m TimerModel) renderBigClock() string {
	var lines [5]strings.Builder
	for _, char := range stats.FormatClock(m.timer.Elapsed()) {
		art, ok := bigDigits[char]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	color := ColorAccentBright
	switch m.timer.State() {
	case timer.Stopped:
		color = ColorWarning
	case timer.Idle:
		color = ColorDisabledText
	}
	clockStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}

// renderTags shows the vocabulary with the draft's tags lit
func (m TimerModel) renderTags() string {
	if m.timer.State() == timer.Idle {
		return ""
	}
	set := m.timer.Tags()
	chips := make([]string, 0, len(models.AllTags))
	for i, tag := range models.AllTags {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
		if set.Has(tag) {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(TagColor(tag))).Bold(true)
		}
		chips = append(chips, style.Render(fmt.Sprintf("%d #%s", i+1, strings.ToLower(string(tag)))))
	}
	return strings.Join(chips, "  ")
}

func (m TimerModel) renderNotes() string {
	if m.editingNotes {
		return m.notes.View()
	}
	if notes := m.timer.Notes(); notes != "" {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("“" + notes + "”")
	}
	return ""
}

func (m TimerModel) renderStatus() string {
	switch {
	case m.saving:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("Saving...")
	case m.err != nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("❌ " + m.err.Error())
	case len(m.saved) > 0 && m.timer.State() == timer.Idle:
		last := m.saved[len(m.saved)-1]
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(
			fmt.Sprintf("✅ Saved %s feeding: %s", last.Side.Label(), stats.FormatDuration(last.DurationSeconds)))
	}
	return ""
}

// renderHelpBar renders the keys valid in the current state
func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	var helpText string
	switch {
	case m.editingNotes:
		helpText = "enter keep notes · esc discard changes"
	case m.timer.State() == timer.Running:
		helpText = "s/space stop · 1-5 tags · n notes · x cancel · ctrl+c quit"
	case m.timer.State() == timer.Stopped:
		helpText = "enter save · r/space resume · 1-5 tags · n notes · x cancel"
	default:
		helpText = "l start left · r start right · q quit"
	}
	return helpStyle.Render(helpText)
}
