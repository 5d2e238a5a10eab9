package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/latch/internal/apperrors"
	"github.com/balkashynov/latch/internal/models"
)

// DefaultListLimit is used when ListOptions.Limit is not positive
const DefaultListLimit = 100

// Scope runs every operation on behalf of a single owner
type Scope struct {
	db      *gorm.DB
	ownerID string
}

// ListOptions filters a feeding listing
type ListOptions struct {
	Limit int
	Tag   *models.Tag // only feedings carrying this tag
}

// CreateFeedingRequest holds the data needed to record a feeding
type CreateFeedingRequest struct {
	Side      models.Side
	StartedAt *time.Time
	EndedAt   *time.Time
	Notes     string
	Tags      []models.Tag
}

// UpdateFeedingRequest holds the fields to change. Nil fields keep their value.
// A non-nil Tags replaces the whole tag set, an empty slice clears it.
// A non-nil Notes pointing at "" clears the notes.
type UpdateFeedingRequest struct {
	Side      *models.Side
	StartedAt *time.Time
	EndedAt   *time.Time
	Notes     *string
	Tags      *[]models.Tag
}

// OwnerID returns the owner this scope acts for
func (s *Scope) OwnerID() string {
	return s.ownerID
}

// List returns the owner's feedings, newest first
func (s *Scope) List(ctx context.Context, opts ListOptions) ([]models.Feeding, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	q := s.db.WithContext(ctx).Where("owner_id = ?", s.ownerID)
	if opts.Tag != nil {
		if !opts.Tag.Valid() {
			return nil, apperrors.Validation("unknown tag %q", string(*opts.Tag))
		}
		q = q.Where("EXISTS (SELECT 1 FROM feeding_tags WHERE feeding_tags.feeding_id = feedings.id AND feeding_tags.tag = ?)", *opts.Tag)
	}

	var feedings []models.Feeding
	err := q.Preload("Tags", orderTags).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&feedings).Error
	if err != nil {
		return nil, apperrors.Internal("list feedings", err)
	}

	for i := range feedings {
		normalizeLoaded(&feedings[i])
	}
	return feedings, nil
}

// Earliest returns the start of the owner's first recorded feeding
func (s *Scope) Earliest(ctx context.Context) (time.Time, bool, error) {
	var feedings []models.Feeding
	err := s.db.WithContext(ctx).
		Select("started_at").
		Where("owner_id = ?", s.ownerID).
		Order("started_at ASC").
		Limit(1).
		Find(&feedings).Error
	if err != nil {
		return time.Time{}, false, apperrors.Internal("find earliest feeding", err)
	}
	if len(feedings) == 0 {
		return time.Time{}, false, nil
	}
	return feedings[0].StartedAt, true, nil
}

// Get returns one feeding owned by the caller
func (s *Scope) Get(ctx context.Context, id string) (*models.Feeding, error) {
	return s.find(s.db.WithContext(ctx), id)
}

// Create records a new feeding
func (s *Scope) Create(ctx context.Context, req CreateFeedingRequest) (*models.Feeding, error) {
	if req.Side == "" {
		return nil, apperrors.Validation("side is required")
	}
	if !req.Side.Valid() {
		return nil, apperrors.Validation("invalid side %q", string(req.Side))
	}
	if req.StartedAt == nil {
		return nil, apperrors.Validation("startedAt is required")
	}
	if req.EndedAt == nil {
		return nil, apperrors.Validation("endedAt is required")
	}

	startedAt, endedAt := normalizeTime(*req.StartedAt), normalizeTime(*req.EndedAt)
	if endedAt.Before(startedAt) {
		return nil, apperrors.Validation("endedAt must not be before startedAt")
	}

	tags, err := models.NewTagSet(req.Tags...)
	if err != nil {
		return nil, err
	}

	feeding := models.Feeding{
		OwnerID:         s.ownerID,
		Side:            req.Side,
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		DurationSeconds: models.DurationSeconds(startedAt, endedAt),
		Notes:           notesValue(req.Notes),
		Tags:            feedingTags("", tags),
	}

	if err := s.db.WithContext(ctx).Create(&feeding).Error; err != nil {
		return nil, apperrors.Internal("create feeding", err)
	}

	normalizeLoaded(&feeding)
	return &feeding, nil
}

// Update applies a partial change to a feeding. Field changes and tag
// replacement commit together or not at all.
func (s *Scope) Update(ctx context.Context, id string, req UpdateFeedingRequest) (*models.Feeding, error) {
	if req.Side != nil && !req.Side.Valid() {
		return nil, apperrors.Validation("invalid side %q", string(*req.Side))
	}
	var tags models.TagSet
	if req.Tags != nil {
		var err error
		if tags, err = models.NewTagSet(*req.Tags...); err != nil {
			return nil, err
		}
	}

	var updated *models.Feeding
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		feeding, err := s.find(tx, id)
		if err != nil {
			return err
		}

		side := feeding.Side
		if req.Side != nil {
			side = *req.Side
		}

		startedAt, endedAt := feeding.StartedAt, feeding.EndedAt
		if req.StartedAt != nil {
			startedAt = normalizeTime(*req.StartedAt)
		}
		if req.EndedAt != nil {
			endedAt = normalizeTime(*req.EndedAt)
		}
		duration := feeding.DurationSeconds
		if !startedAt.Equal(feeding.StartedAt) || !endedAt.Equal(feeding.EndedAt) {
			if endedAt.Before(startedAt) {
				return apperrors.Validation("endedAt must not be before startedAt")
			}
			duration = models.DurationSeconds(startedAt, endedAt)
		}

		notes := feeding.Notes
		if req.Notes != nil {
			notes = notesValue(*req.Notes)
		}

		err = tx.Model(&models.Feeding{}).Where("id = ?", feeding.ID).Updates(map[string]any{
			"side":             side,
			"started_at":       startedAt,
			"ended_at":         endedAt,
			"duration_seconds": duration,
			"notes":            notes,
		}).Error
		if err != nil {
			return apperrors.Internal("update feeding", err)
		}

		if req.Tags != nil {
			if err := replaceTags(tx, feeding.ID, tags); err != nil {
				return err
			}
		}

		updated, err = s.find(tx, feeding.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a feeding together with its tags
func (s *Scope) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		feeding, err := s.find(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("feeding_id = ?", feeding.ID).Delete(&models.FeedingTag{}).Error; err != nil {
			return apperrors.Internal("delete feeding tags", err)
		}
		if err := tx.Delete(&models.Feeding{}, "id = ?", feeding.ID).Error; err != nil {
			return apperrors.Internal("delete feeding", err)
		}
		return nil
	})
}

// find resolves a feeding by id and checks ownership. A record owned by
// someone else is reported exactly like a missing one.
func (s *Scope) find(tx *gorm.DB, id string) (*models.Feeding, error) {
	var feeding models.Feeding
	err := tx.Preload("Tags", orderTags).First(&feeding, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, apperrors.Internal("load feeding", err)
	}
	if feeding.OwnerID != s.ownerID {
		return nil, notFound(id)
	}

	normalizeLoaded(&feeding)
	return &feeding, nil
}

// replaceTags swaps the whole tag set of a feeding inside tx
func replaceTags(tx *gorm.DB, feedingID string, tags models.TagSet) error {
	if err := tx.Where("feeding_id = ?", feedingID).Delete(&models.FeedingTag{}).Error; err != nil {
		return apperrors.Internal("clear feeding tags", err)
	}
	rows := feedingTags(feedingID, tags)
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return apperrors.Internal("write feeding tags", err)
	}
	return nil
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("tag ASC")
}

func notFound(id string) error {
	return fmt.Errorf("feeding %s: %w", id, apperrors.ErrNotFound)
}

func feedingTags(feedingID string, tags models.TagSet) []models.FeedingTag {
	rows := make([]models.FeedingTag, 0, tags.Len())
	for _, t := range tags.Tags() {
		rows = append(rows, models.FeedingTag{FeedingID: feedingID, Tag: t})
	}
	return rows
}

func notesValue(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}

// normalizeTime stores instants in UTC at millisecond precision
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func normalizeLoaded(f *models.Feeding) {
	if f.Tags == nil {
		f.Tags = []models.FeedingTag{}
	}
}
