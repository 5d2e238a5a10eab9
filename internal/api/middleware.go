package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/balkashynov/latch/internal/auth"
)

type contextKey string

const ownerIDKey contextKey = "ownerId"

// Verifier resolves a bearer token to an owner id
type Verifier interface {
	Verify(token string) (string, error)
}

// authenticate rejects requests without a valid bearer token and stores the
// owner id on the request context
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err == nil {
			var ownerID string
			if ownerID, err = s.verifier.Verify(token); err == nil {
				ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		s.log.Debug("authentication failed", "path", r.URL.Path, "err", err)
		s.fail(w, r, err)
	})
}

// OwnerID returns the authenticated owner for r
func OwnerID(r *http.Request) string {
	ownerID, ok := r.Context().Value(ownerIDKey).(string)
	if !ok {
		return ""
	}
	return ownerID
}

// requestLogger logs one line per request
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
