// Package timer implements the feeding stopwatch: an explicit state machine
// that accumulates elapsed seconds while running, freezes them while stopped
// and turns the draft into a stored feeding on save.
package timer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/balkashynov/latch/internal/apperrors"
	"github.com/balkashynov/latch/internal/clock"
	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/models"
)

// State of a SessionTimer
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrInvalidTransition = errors.New("invalid timer transition")
	ErrNoSide            = fmt.Errorf("%w: select a side", apperrors.ErrValidation)
	ErrZeroElapsed       = fmt.Errorf("%w: let the timer run for at least 1 second", apperrors.ErrValidation)
)

// Creator persists a finished draft
type Creator interface {
	Create(ctx context.Context, req db.CreateFeedingRequest) (*models.Feeding, error)
}

// SessionTimer is owned by a single interaction. It is not safe for
// concurrent use; the driver serialises ticks and key presses.
type SessionTimer struct {
	clock   clock.Clock
	state   State
	elapsed int
	side    models.Side
	notes   string
	tags    models.TagSet
}

// New returns an idle timer reading time from c
func New(c clock.Clock) *SessionTimer {
	if c == nil {
		c = clock.System{}
	}
	return &SessionTimer{clock: c}
}

func (t *SessionTimer) State() State        { return t.state }
func (t *SessionTimer) Elapsed() int        { return t.elapsed }
func (t *SessionTimer) Side() models.Side   { return t.side }
func (t *SessionTimer) Notes() string       { return t.notes }
func (t *SessionTimer) Tags() models.TagSet { return t.tags }

// HasDraft reports whether there is an unsaved session
func (t *SessionTimer) HasDraft() bool {
	return t.state != Idle
}

// Start begins timing a feeding on side
func (t *SessionTimer) Start(side models.Side) error {
	if err := t.expect("start", Idle); err != nil {
		return err
	}
	if side == "" {
		return ErrNoSide
	}
	if !side.Valid() {
		return apperrors.Validation("invalid side %q", string(side))
	}
	t.side = side
	t.elapsed = 0
	t.state = Running
	return nil
}

// Tick adds one second. It is driven by a 1 Hz source while running.
func (t *SessionTimer) Tick() error {
	if err := t.expect("tick", Running); err != nil {
		return err
	}
	t.elapsed++
	return nil
}

// Stop freezes the elapsed time so the draft can be reviewed
func (t *SessionTimer) Stop() error {
	if err := t.expect("stop", Running); err != nil {
		return err
	}
	t.state = Stopped
	return nil
}

// Resume continues accumulating from the frozen value
func (t *SessionTimer) Resume() error {
	if err := t.expect("resume", Stopped); err != nil {
		return err
	}
	t.state = Running
	return nil
}

// Cancel discards the draft
func (t *SessionTimer) Cancel() error {
	if err := t.expect("cancel", Running, Stopped); err != nil {
		return err
	}
	t.reset()
	return nil
}

// SetNotes replaces the draft notes
func (t *SessionTimer) SetNotes(notes string) error {
	if err := t.expect("edit notes", Running, Stopped); err != nil {
		return err
	}
	t.notes = notes
	return nil
}

// ToggleTag adds or removes a tag on the draft
func (t *SessionTimer) ToggleTag(tag models.Tag) error {
	if err := t.expect("edit tags", Running, Stopped); err != nil {
		return err
	}
	return t.tags.Toggle(tag)
}

// AddTag puts a tag on the draft; adding a present tag is a no-op
func (t *SessionTimer) AddTag(tag models.Tag) error {
	if err := t.expect("edit tags", Running, Stopped); err != nil {
		return err
	}
	_, err := t.tags.Add(tag)
	return err
}

// RemoveTag takes a tag off the draft
func (t *SessionTimer) RemoveTag(tag models.Tag) error {
	if err := t.expect("edit tags", Running, Stopped); err != nil {
		return err
	}
	t.tags.Remove(tag)
	return nil
}

// PrepareSave validates the draft and builds the create request. The end
// instant is the clock at save time and the start is derived from the
// accumulated seconds, so time spent stopped is never recorded. The timer
// stays stopped until Commit.
func (t *SessionTimer) PrepareSave() (db.CreateFeedingRequest, error) {
	if err := t.expect("save", Stopped); err != nil {
		return db.CreateFeedingRequest{}, err
	}
	if t.side == "" {
		return db.CreateFeedingRequest{}, ErrNoSide
	}
	if t.elapsed == 0 {
		return db.CreateFeedingRequest{}, ErrZeroElapsed
	}

	endedAt := t.clock.Now()
	startedAt := endedAt.Add(-time.Duration(t.elapsed) * time.Second)
	return db.CreateFeedingRequest{
		Side:      t.side,
		StartedAt: &startedAt,
		EndedAt:   &endedAt,
		Notes:     t.notes,
		Tags:      t.tags.Tags(),
	}, nil
}

// Commit clears the draft after its create request succeeded
func (t *SessionTimer) Commit() error {
	if err := t.expect("commit", Stopped); err != nil {
		return err
	}
	t.reset()
	return nil
}

// Save submits the draft through c and returns to idle on success. On
// failure the timer stays stopped with the draft intact.
func (t *SessionTimer) Save(ctx context.Context, c Creator) (*models.Feeding, error) {
	req, err := t.PrepareSave()
	if err != nil {
		return nil, err
	}
	feeding, err := c.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("save feeding: %w", err)
	}
	if err := t.Commit(); err != nil {
		return nil, err
	}
	return feeding, nil
}

func (t *SessionTimer) expect(action string, allowed ...State) error {
	for _, s := range allowed {
		if t.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, t.state)
}

func (t *SessionTimer) reset() {
	t.state = Idle
	t.elapsed = 0
	t.side = ""
	t.notes = ""
	t.tags = models.TagSet{}
}
