package api

import (
	"encoding/json"
	"net/http"

	"github.com/balkashynov/latch/internal/apperrors"
)

func (s *Server) respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", "err", err)
	}
}

// fail reports err with the status its category maps to. Internal failures
// are logged and replaced by a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.respondJSON(w, map[string]string{"error": apperrors.PublicMessage(err)}, status)
}
