package api

import (
	"net/http"

	"backoffice/internal/models"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		s.responder.Respond(w, r, s.storeError("product", "", err))
		return
	}
	s.writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	product, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("product", id, err))
		return
	}
	s.writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.NewProduct
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}

	product, err := s.store.CreateProduct(r.Context(), &req)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("product", "", err))
		return
	}
	s.writeJSON(w, http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.NewProduct
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}

	product, err := s.store.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		s.responder.Respond(w, r, s.storeError("product", id, err))
		return
	}
	s.writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteProduct(r.Context(), id); err != nil {
		s.responder.Respond(w, r, s.storeError("product", id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
