package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/balkashynov/latch/internal/apperrors"
	"github.com/balkashynov/latch/internal/db"
	"github.com/balkashynov/latch/internal/models"
	"github.com/balkashynov/latch/internal/stats"
)

type createFeedingBody struct {
	Side      string     `json:"side"`
	StartedAt *time.Time `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
	Notes     *string    `json:"notes"`
	Tags      []string   `json:"tags"`
}

// updateFeedingBody keeps notes raw so an explicit null can clear them
type updateFeedingBody struct {
	Side      *string         `json:"side"`
	StartedAt *time.Time      `json:"startedAt"`
	EndedAt   *time.Time      `json:"endedAt"`
	Notes     json.RawMessage `json:"notes"`
	Tags      *[]string       `json:"tags"`
}

func (s *Server) listFeedings(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	feedings, err := s.scope(r).List(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if feedings == nil {
		feedings = []models.Feeding{}
	}
	s.respondJSON(w, feedings, http.StatusOK)
}

func (s *Server) createFeeding(w http.ResponseWriter, r *http.Request) {
	var body createFeedingBody
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}

	tags, err := parseTags(body.Tags)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req := db.CreateFeedingRequest{
		Side:      models.Side(strings.ToUpper(strings.TrimSpace(body.Side))),
		StartedAt: body.StartedAt,
		EndedAt:   body.EndedAt,
		Tags:      tags,
	}
	if body.Notes != nil {
		req.Notes = *body.Notes
	}

	feeding, err := s.scope(r).Create(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, feeding, http.StatusCreated)
}

func (s *Server) updateFeeding(w http.ResponseWriter, r *http.Request) {
	var body updateFeedingBody
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}

	req := db.UpdateFeedingRequest{
		StartedAt: body.StartedAt,
		EndedAt:   body.EndedAt,
	}
	if body.Side != nil {
		side := models.Side(strings.ToUpper(strings.TrimSpace(*body.Side)))
		req.Side = &side
	}
	if len(body.Notes) > 0 {
		notes, err := parseNotes(body.Notes)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		req.Notes = &notes
	}
	if body.Tags != nil {
		tags, err := parseTags(*body.Tags)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		req.Tags = &tags
	}

	feeding, err := s.scope(r).Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, feeding, http.StatusOK)
}

func (s *Server) deleteFeeding(w http.ResponseWriter, r *http.Request) {
	if err := s.scope(r).Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	summary, err := stats.Summarize(r.Context(), s.scope(r), s.clock.Now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, summary, http.StatusOK)
}

func parseListOptions(r *http.Request) (db.ListOptions, error) {
	opts := db.ListOptions{Limit: db.DefaultListLimit}
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return opts, apperrors.Validation("limit must be a positive integer")
		}
		opts.Limit = limit
	}
	if raw := q.Get("tag"); raw != "" {
		tag, err := models.ParseTag(raw)
		if err != nil {
			return opts, err
		}
		opts.Tag = &tag
	}
	return opts, nil
}

func parseTags(raw []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(raw))
	for _, name := range raw {
		tag, err := models.ParseTag(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// parseNotes turns a JSON string or null into notes text; null clears
func parseNotes(raw json.RawMessage) (string, error) {
	if string(raw) == "null" {
		return "", nil
	}
	var notes string
	if err := json.Unmarshal(raw, &notes); err != nil {
		return "", apperrors.Validation("notes must be a string or null")
	}
	return notes, nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("invalid request body: %s", describeDecodeError(err))
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("field %q has the wrong type", typeErr.Field)
	}
	return err.Error()
}
