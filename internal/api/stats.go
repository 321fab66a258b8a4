package api

import (
	"net/http"
)

// handleStats returns the dashboard counters in one response.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.DashboardStats(r.Context())
	if err != nil {
		s.responder.Respond(w, r, s.storeError("stats", "", err))
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
