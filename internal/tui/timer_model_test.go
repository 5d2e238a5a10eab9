package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/latch/internal/clock"
	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/stats"
	"github.com/balkashynov/latch/internal/timer"
)

type fakeCreator struct {
	requests []db.CreateFeedingRequest
	err      error
}

func (f *fakeCreator) Create(_ context.Context, req db.CreateFeedingRequest) (*models.Feeding, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Feeding{
		ID:              "feeding-1",
		Side:            req.Side,
		StartedAt:       *req.StartedAt,
		EndedAt:         *req.EndedAt,
		DurationSeconds: models.DurationSeconds(*req.StartedAt, *req.EndedAt),
	}, nil
}

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestTimerModel(creator timer.Creator) TimerModel {
	m := NewTimerModel(creator, clock.Func(func() time.Time { return fixedNow }))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(TimerModel)
}

func press(t *testing.T, m TimerModel, keys ...string) (TimerModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, key := range keys {
		var msg tea.KeyMsg
		switch key {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(TimerModel), c
	}
	return m, cmd
}

func tick(m TimerModel, generation int) TimerModel {
	next, _ := m.Update(timerTickMsg{generation: generation})
	return next.(TimerModel)
}

func TestTimerKeysDriveStateMachine(t *testing.T) {
	m := newTestTimerModel(&fakeCreator{})

	m, cmd := press(t, m, "l")
	if m.Timer().State() != timer.Running || m.Timer().Side() != models.SideLeft {
		t.Fatalf("expected running on LEFT, got %s %q", m.Timer().State(), m.Timer().Side())
	}
	if cmd == nil {
		t.Fatalf("start should schedule a tick")
	}

	for i := 0; i < 5; i++ {
		m = tick(m, m.generation)
	}
	m, _ = press(t, m, "s")
	if m.Timer().State() != timer.Stopped || m.Timer().Elapsed() != 5 {
		t.Fatalf("after stop: %s elapsed=%d", m.Timer().State(), m.Timer().Elapsed())
	}

	m, cmd = press(t, m, "r")
	if m.Timer().State() != timer.Running || cmd == nil {
		t.Fatalf("resume should run and schedule a tick")
	}
	for i := 0; i < 3; i++ {
		m = tick(m, m.generation)
	}
	m, _ = press(t, m, " ")
	if m.Timer().Elapsed() != 8 {
		t.Fatalf("Elapsed() = %d, want 8", m.Timer().Elapsed())
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	m := newTestTimerModel(&fakeCreator{})
	m, _ = press(t, m, "r")
	first := m.generation

	m, _ = press(t, m, "s")
	m = tick(m, first)
	if m.Timer().Elapsed() != 0 {
		t.Fatalf("tick after stop counted: %d", m.Timer().Elapsed())
	}

	m, _ = press(t, m, "r")
	m = tick(m, first)
	if m.Timer().Elapsed() != 0 {
		t.Fatalf("tick from before resume counted: %d", m.Timer().Elapsed())
	}
	m = tick(m, m.generation)
	if m.Timer().Elapsed() != 1 {
		t.Fatalf("Elapsed() = %d, want 1", m.Timer().Elapsed())
	}
}

func TestTagKeysAndNotes(t *testing.T) {
	m := newTestTimerModel(&fakeCreator{})
	m, _ = press(t, m, "l", "1", "4", "4", "5", "9")

	tags := m.Timer().Tags()
	if !tags.Has(models.TagGood) || tags.Has(models.TagCluster) || !tags.Has(models.TagSleepy) || tags.Len() != 2 {
		t.Fatalf("tags = %v", tags)
	}

	m, _ = press(t, m, "n")
	if !m.editingNotes {
		t.Fatalf("n should open the notes editor")
	}
	m, _ = press(t, m, "s", "l", "o", "w")
	if m.Timer().State() != timer.Running {
		t.Fatalf("keys typed into notes must not drive the timer")
	}
	m, _ = press(t, m, "enter")
	if m.editingNotes || m.Timer().Notes() != "slow" {
		t.Fatalf("notes = %q editing=%v", m.Timer().Notes(), m.editingNotes)
	}
}

func TestSaveRunsAsynchronously(t *testing.T) {
	creator := &fakeCreator{}
	m := newTestTimerModel(creator)
	m, _ = press(t, m, "r")
	for i := 0; i < 90; i++ {
		m = tick(m, m.generation)
	}
	m, _ = press(t, m, "s", "2")

	m, cmd := press(t, m, "enter")
	if cmd == nil || !m.saving {
		t.Fatalf("enter should start an asynchronous save")
	}
	if len(creator.requests) != 0 {
		t.Fatalf("create must not run inside Update")
	}

	msg := cmd()
	next, _ := m.Update(msg)
	m = next.(TimerModel)

	if len(creator.requests) != 1 {
		t.Fatalf("expected one create request, got %d", len(creator.requests))
	}
	req := creator.requests[0]
	if !req.EndedAt.Equal(fixedNow) || !req.StartedAt.Equal(fixedNow.Add(-90*time.Second)) {
		t.Fatalf("unexpected times %v - %v", req.StartedAt, req.EndedAt)
	}
	if req.Side != models.SideRight || len(req.Tags) != 1 || req.Tags[0] != models.TagMedium {
		t.Fatalf("unexpected request %+v", req)
	}
	if m.Timer().State() != timer.Idle || len(m.Saved()) != 1 || m.saving {
		t.Fatalf("after save: state=%s saved=%d", m.Timer().State(), len(m.Saved()))
	}
	if !strings.Contains(m.View(), "Saved Right feeding") {
		t.Fatalf("view should confirm the save")
	}
}

func TestSaveFailureKeepsDraftInView(t *testing.T) {
	creator := &fakeCreator{err: errors.New("database is locked")}
	m := newTestTimerModel(creator)
	m, _ = press(t, m, "l")
	m = tick(m, m.generation)
	m, _ = press(t, m, "s")

	m, cmd := press(t, m, "enter")
	next, _ := m.Update(cmd())
	m = next.(TimerModel)

	if m.Timer().State() != timer.Stopped || m.Timer().Elapsed() != 1 {
		t.Fatalf("draft lost: state=%s elapsed=%d", m.Timer().State(), m.Timer().Elapsed())
	}
	if m.err == nil || !strings.Contains(m.View(), "database is locked") {
		t.Fatalf("error should be shown")
	}
}

func TestSaveWithZeroElapsedIsRejected(t *testing.T) {
	creator := &fakeCreator{}
	m := newTestTimerModel(creator)
	m, _ = press(t, m, "l", "s")

	m, cmd := press(t, m, "enter")
	if cmd != nil || m.saving {
		t.Fatalf("no save should start with zero elapsed")
	}
	if !errors.Is(m.err, timer.ErrZeroElapsed) {
		t.Fatalf("err = %v, want ErrZeroElapsed", m.err)
	}
}

func TestCancelReturnsToIdle(t *testing.T) {
	m := newTestTimerModel(&fakeCreator{})
	m, _ = press(t, m, "l")
	m = tick(m, m.generation)
	m, _ = press(t, m, "x")
	if m.Timer().State() != timer.Idle || m.Timer().Elapsed() != 0 {
		t.Fatalf("cancel left state=%s elapsed=%d", m.Timer().State(), m.Timer().Elapsed())
	}

	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatalf("q should quit when idle")
	}
}

func TestRenderStatsHidesThinWindows(t *testing.T) {
	all := []stats.WindowStats{
		{Window: stats.Window{Label: "Today"}, Sessions: 3, TotalSeconds: 1800, AverageSeconds: 600, AvgSessionsPerDay: 3, EnoughHistory: true},
		{Window: stats.Window{Label: "Last 7 Days", Days: 7}, Sessions: 3, EnoughHistory: false},
	}
	out := RenderStats(all, 120)
	if !strings.Contains(out, "30m 0s") || !strings.Contains(out, "No data yet for this period.") {
		t.Fatalf("unexpected render:\n%s", out)
	}
}

type fakeDeleter struct {
	ids []string
}

func (f *fakeDeleter) Delete(_ context.Context, id string) error {
	f.ids = append(f.ids, id)
	return nil
}

func TestListDeleteNeedsConfirmation(t *testing.T) {
	feedings := []models.Feeding{
		{ID: "a", Side: models.SideLeft, StartedAt: fixedNow, EndedAt: fixedNow.Add(time.Minute), DurationSeconds: 60},
		{ID: "b", Side: models.SideRight, StartedAt: fixedNow.Add(-time.Hour), EndedAt: fixedNow.Add(-50 * time.Minute), DurationSeconds: 600},
	}
	deleter := &fakeDeleter{}
	var model tea.Model = NewListModel(feedings, deleter, clock.Func(func() time.Time { return fixedNow }))
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if cmd != nil || len(deleter.ids) != 0 {
		t.Fatalf("declined delete must not run")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil {
		t.Fatalf("confirmed delete should return a command")
	}
	model, _ = model.Update(cmd())

	m := model.(ListModel)
	if len(deleter.ids) != 1 || deleter.ids[0] != "b" {
		t.Fatalf("deleted %v, want [b]", deleter.ids)
	}
	if len(m.feedings) != 1 || m.selected != 0 || m.deleted != 1 {
		t.Fatalf("list not updated: %d feedings, selected %d", len(m.feedings), m.selected)
	}
}
