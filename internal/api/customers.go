package api

import (
	"net/http"

	"backoffice/internal/common/errors"
	"backoffice/internal/models"
)

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.store.ListCustomers(r.Context())
	if err != nil {
		s.responder.Respond(w, r, s.storeError("customer", "", err))
		return
	}
	s.writeJSON(w, http.StatusOK, customers)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	customer, err := s.store.GetCustomer(r.Context(), id)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("customer", id, err))
		return
	}
	s.writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.NewCustomer
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}
	if req.Name == "" {
		s.responder.Respond(w, r, errors.NewInvalidInputError("Naam is vereist"))
		return
	}

	customer, err := s.store.CreateCustomer(r.Context(), &req)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("customer", "", err))
		return
	}
	s.writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.NewCustomer
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}
	if req.Name == "" {
		s.responder.Respond(w, r, errors.NewInvalidInputError("Naam is vereist"))
		return
	}

	customer, err := s.store.UpdateCustomer(r.Context(), id, &req)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("customer", id, err))
		return
	}
	s.writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteCustomer(r.Context(), id); err != nil {
		s.responder.Respond(w, r, s.storeError("customer", id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
