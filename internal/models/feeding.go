package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Side is the breast a session was fed on
type Side string

const (
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
)

// Valid reports whether s is one of the known sides
func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// Label returns a display name for the side
func (s Side) Label() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return "-"
	}
}

// Feeding represents one recorded feeding session
type Feeding struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	OwnerID         string    `gorm:"not null;size:128;index:idx_feedings_owner_started,priority:1" json:"-"`
	Side            Side      `gorm:"not null;size:5" json:"side"`
	StartedAt       time.Time `gorm:"not null;index:idx_feedings_owner_started,priority:2" json:"startedAt"`
	EndedAt         time.Time `gorm:"not null" json:"endedAt"`
	DurationSeconds int       `gorm:"not null" json:"durationSeconds"` // floor(EndedAt - StartedAt)
	Notes           *string   `json:"notes"`

	// Relationships
	Tags []FeedingTag `gorm:"foreignKey:FeedingID;constraint:OnDelete:CASCADE;" json:"tags"`
}

// FeedingTag is one label attached to a feeding
type FeedingTag struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	FeedingID string `gorm:"not null;size:36;uniqueIndex:idx_feeding_tags_feeding_tag,priority:1" json:"-"`
	Tag       Tag    `gorm:"not null;size:10;uniqueIndex:idx_feeding_tags_feeding_tag,priority:2" json:"tag"`
}

// BeforeCreate assigns an id when the caller did not
func (f *Feeding) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns an id when the caller did not
func (t *FeedingTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TagSet returns the feeding's labels as a set
func (f Feeding) TagSet() TagSet {
	var set TagSet
	for _, t := range f.Tags {
		set.items = append(set.items, t.Tag)
	}
	set.normalize()
	return set
}

// NotesText returns the notes or an empty string
func (f Feeding) NotesText() string {
	if f.Notes == nil {
		return ""
	}
	return *f.Notes
}

// DurationSeconds returns whole seconds between start and end, rounded down
func DurationSeconds(startedAt, endedAt time.Time) int {
	d := endedAt.Sub(startedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
