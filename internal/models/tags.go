package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/balkashynov/latch/internal/apperrors"
)

// Tag is a qualitative label from a fixed vocabulary
type Tag string

const (
	TagGood    Tag = "GOOD"
	TagMedium  Tag = "MEDIUM"
	TagBad     Tag = "BAD"
	TagCluster Tag = "CLUSTER"
	TagSleepy  Tag = "SLEEPY"
)

// AllTags lists the vocabulary in display order
var AllTags = []Tag{TagGood, TagMedium, TagBad, TagCluster, TagSleepy}

// Valid reports whether t belongs to the vocabulary
func (t Tag) Valid() bool {
	return t.rank() >= 0
}

func (t Tag) rank() int {
	for i, known := range AllTags {
		if t == known {
			return i
		}
	}
	return -1
}

// ParseTag accepts a tag name in any case, with or without a leading '#'
func ParseTag(s string) (Tag, error) {
	t := Tag(strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#")))
	if !t.Valid() {
		return "", apperrors.Validation("unknown tag %q", s)
	}
	return t, nil
}

// TagSet holds distinct tags. The zero value is an empty set.
type TagSet struct {
	items []Tag
}

// NewTagSet builds a set, collapsing duplicates and rejecting unknown tags
func NewTagSet(tags ...Tag) (TagSet, error) {
	var set TagSet
	for _, t := range tags {
		if _, err := set.Add(t); err != nil {
			return TagSet{}, err
		}
	}
	return set, nil
}

// Add inserts t and reports whether it was not already present
func (s *TagSet) Add(t Tag) (bool, error) {
	if !t.Valid() {
		return false, apperrors.Validation("unknown tag %q", string(t))
	}
	if s.Has(t) {
		return false, nil
	}
	s.items = append(s.Tags(), t)
	s.normalize()
	return true, nil
}

// Remove deletes t and reports whether it was present
func (s *TagSet) Remove(t Tag) bool {
	for i, existing := range s.items {
		if existing == t {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle adds t when absent and removes it when present
func (s *TagSet) Toggle(t Tag) error {
	if s.Remove(t) {
		return nil
	}
	_, err := s.Add(t)
	return err
}

func (s TagSet) Has(t Tag) bool {
	for _, existing := range s.items {
		if existing == t {
			return true
		}
	}
	return false
}

func (s TagSet) Len() int {
	return len(s.items)
}

// Tags returns a copy of the members in vocabulary order
func (s TagSet) Tags() []Tag {
	out := make([]Tag, len(s.items))
	copy(out, s.items)
	return out
}

// Equal compares membership, ignoring order
func (s TagSet) Equal(other TagSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, t := range s.items {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

func (s TagSet) String() string {
	names := make([]string, len(s.items))
	for i, t := range s.items {
		names[i] = string(t)
	}
	return fmt.Sprintf("{%s}", strings.Join(names, ", "))
}

func (s *TagSet) normalize() {
	sort.Slice(s.items, func(i, j int) bool {
		return s.items[i].rank() < s.items[j].rank()
	})
}
