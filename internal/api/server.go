// Package api exposes the owner-scoped feeding store and statistics over
// HTTP with JSON bodies.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/balkashynov/latch/internal/clock"
	"github.com/balkashynov/latch/internal/db"
)

// ScopeProvider hands out owner-scoped views of the record store
type ScopeProvider interface {
	ForOwner(ownerID string) *db.Scope
}

type Server struct {
	store    ScopeProvider
	verifier Verifier
	clock    clock.Clock
	log      *slog.Logger
}

func NewServer(store ScopeProvider, verifier Verifier, clk clock.Clock, log *slog.Logger) *Server {
	if clk == nil {
		clk = clock.System{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: store, verifier: verifier, clock: clk, log: log}
}

// Routes builds the HTTP handler
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/feedings", func(r chi.Router) {
			r.Get("/", s.listFeedings)
			r.Post("/", s.createFeeding)
			r.Patch("/{id}", s.updateFeeding)
			r.Delete("/{id}", s.deleteFeeding)
		})
		r.Get("/stats", s.getStats)
	})

	return r
}

func (s *Server) scope(r *http.Request) *db.Scope {
	return s.store.ForOwner(OwnerID(r))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
