package api

import (
	"net/http"
)

type intakeRequest struct {
	Message string `json:"message"`
}

// handleIntake runs a free-text message through the extraction pipeline and
// returns the created task.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}

	task, err := s.intake.Process(r.Context(), req.Message)
	if err != nil {
		s.responder.Respond(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}
