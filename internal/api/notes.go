package api

import (
	"net/http"

	"backoffice/internal/common/errors"
	"backoffice/internal/models"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.ListNotes(r.Context())
	if err != nil {
		s.responder.Respond(w, r, s.storeError("note", "", err))
		return
	}
	s.writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleListCustomerNotes(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")

	exists, err := s.store.CustomerExists(r.Context(), customerID)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("customer", customerID, err))
		return
	}
	if !exists {
		s.responder.Respond(w, r, errors.NewNotFoundError("customer", customerID))
		return
	}

	notes, err := s.store.ListCustomerNotes(r.Context(), customerID)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("note", "", err))
		return
	}
	s.writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")

	var req models.NewNote
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}
	if req.NoteTitle == "" || req.NoteText == "" {
		s.responder.Respond(w, r, errors.NewInvalidInputError("Notitie titel en tekst zijn vereist"))
		return
	}
	if session := sessionFromContext(r.Context()); session != nil && req.UserID == "" {
		req.UserID = session.UserID
	}

	exists, err := s.store.CustomerExists(r.Context(), customerID)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("customer", customerID, err))
		return
	}
	if !exists {
		s.responder.Respond(w, r, errors.NewNotFoundError("customer", customerID))
		return
	}

	note, err := s.store.CreateNote(r.Context(), customerID, &req)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("note", "", err))
		return
	}
	s.writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")
	noteID := r.PathValue("noteId")

	var req models.NewNote
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}
	if req.NoteText == "" {
		s.responder.Respond(w, r, errors.NewInvalidInputError("Notitie tekst is vereist"))
		return
	}

	note, err := s.store.UpdateNote(r.Context(), customerID, noteID, &req)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("note", noteID, err))
		return
	}
	s.writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")
	noteID := r.PathValue("noteId")

	if err := s.store.DeleteNote(r.Context(), customerID, noteID); err != nil {
		s.responder.Respond(w, r, s.storeError("note", noteID, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
