package api

import (
	"net/http"
)

// handleListActivity returns the activity log, newest first.
func (s *Server) handleListActivity(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Activity())
}

// handleClearActivity empties the activity log.
func (s *Server) handleClearActivity(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearActivity(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
