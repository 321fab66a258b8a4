package api

import (
	"net/http"

	"backoffice/internal/models"
)

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.ListOrders(r.Context())
	if err != nil {
		s.responder.Respond(w, r, s.storeError("order", "", err))
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.NewOrder
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}

	order, err := s.store.CreateOrder(r.Context(), &req)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("order", "", err))
		return
	}
	s.writeJSON(w, http.StatusCreated, order)
}
