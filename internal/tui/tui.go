package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/latch/internal/clock"
	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/stats"
	"github.com/balkashynov/latch/internal/timer"
)

// RunTimerTUI starts the interactive feeding timer. A non-empty side
// starts timing immediately.
func RunTimerTUI(creator timer.Creator, clk clock.Clock, side models.Side) error {
	model := NewTimerModel(creator, clk)
	if side != "" {
		var err error
		if model, err = model.StartOn(side); err != nil {
			return err
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Handle exit messages after TUI closes
	if m, ok := finalModel.(TimerModel); ok {
		for _, f := range m.Saved() {
			fmt.Printf("✅ Saved %s feeding: %s (ID: %s)\n", f.Side.Label(), stats.FormatDuration(f.DurationSeconds), f.ID)
		}
		if m.Timer().HasDraft() {
			fmt.Println("❌ Unsaved feeding discarded.")
		}
	}
	return nil
}

// RunListTUI starts the interactive feeding browser
func RunListTUI(feedings []models.Feeding, deleter Deleter, clk clock.Clock) error {
	model := NewListModel(feedings, deleter, clk)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(ListModel); ok && m.deleted > 0 {
		fmt.Printf("🗑️  Deleted %d feeding(s).\n", m.deleted)
	}
	return nil
}
