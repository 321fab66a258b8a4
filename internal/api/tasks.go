package api

import (
	"net/http"
	"strconv"

	"backoffice/internal/common/errors"
	"backoffice/internal/models"
	"backoffice/internal/store"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	filter := store.TaskFilter{
		CustomerID: r.URL.Query().Get("customer_id"),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			s.responder.Respond(w, r, errors.NewInvalidInputError("Ongeldige status: "+raw))
			return
		}
		filter.Status = status
	}
	if raw := r.URL.Query().Get("week"); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil {
			s.responder.Respond(w, r, errors.NewInvalidInputError("Ongeldig weeknummer: "+raw))
			return
		}
		filter.Week = &week
	}

	tasks, err := s.store.ListTasks(r.Context(), filter)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("task", "", err))
		return
	}
	s.writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.NewTask
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}

	task, err := s.store.CreateTask(r.Context(), &req)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("task", "", err))
		return
	}
	s.writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("task", id, err))
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var updates map[string]interface{}
	if err := s.decodeJSON(r, &updates); err != nil {
		s.responder.Respond(w, r, err)
		return
	}
	if len(updates) == 0 {
		s.responder.Respond(w, r, errors.NewInvalidInputError("Geen velden om bij te werken"))
		return
	}

	task, err := s.store.UpdateTask(r.Context(), id, updates)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("task", id, err))
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

// handleListTags returns the distinct tags in use, for the tag filter.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags(r.Context())
	if err != nil {
		s.responder.Respond(w, r, s.storeError("tag", "", err))
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		s.responder.Respond(w, r, s.storeError("task", id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
