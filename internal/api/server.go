// Package api exposes the dashboard over HTTP: session-cookie auth, the
// task-intake endpoint, and CRUD for tasks, customers, notes, products and
// orders.
package api

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/auth"
	"backoffice/internal/common/config"
	"backoffice/internal/common/errors"
	"backoffice/internal/common/logger"
	"backoffice/internal/intake"
	"backoffice/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP routes to the services behind them.
type Server struct {
	store     *store.Store
	intake    *intake.Service
	sessions  *auth.SessionStore
	authn     *auth.Authenticator
	responder *errors.Responder
	logger    logger.Logger

	cookieName   string
	secureCookie bool
}

func NewServer(st *store.Store, intakeSvc *intake.Service, sessions *auth.SessionStore, authn *auth.Authenticator, cfg config.AuthConfig, log logger.Logger) *Server {
	return &Server{
		store:        st,
		intake:       intakeSvc,
		sessions:     sessions,
		authn:        authn,
		responder:    errors.NewResponder(log),
		logger:       log.WithFields(map[string]interface{}{"component": "api"}),
		cookieName:   cfg.CookieName,
		secureCookie: cfg.SecureCookie,
	}
}

// Routes builds the full mux. Everything under /api except the auth
// endpoints requires a valid session.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.Handle("GET /api/auth/session", s.requireSession(s.handleSession))

	mux.Handle("POST /api/ai/tasks", s.requireSession(s.handleIntake))

	mux.Handle("GET /api/tasks", s.requireSession(s.handleListTasks))
	mux.Handle("POST /api/tasks", s.requireSession(s.handleCreateTask))
	mux.Handle("GET /api/tasks/{id}", s.requireSession(s.handleGetTask))
	mux.Handle("PATCH /api/tasks/{id}", s.requireSession(s.handleUpdateTask))
	mux.Handle("DELETE /api/tasks/{id}", s.requireSession(s.handleDeleteTask))
	mux.Handle("GET /api/tags", s.requireSession(s.handleListTags))

	mux.Handle("GET /api/customers", s.requireSession(s.handleListCustomers))
	mux.Handle("POST /api/customers", s.requireSession(s.handleCreateCustomer))
	mux.Handle("GET /api/customers/{id}", s.requireSession(s.handleGetCustomer))
	mux.Handle("PUT /api/customers/{id}", s.requireSession(s.handleUpdateCustomer))
	mux.Handle("DELETE /api/customers/{id}", s.requireSession(s.handleDeleteCustomer))

	mux.Handle("GET /api/notes", s.requireSession(s.handleListNotes))
	mux.Handle("GET /api/customers/{id}/notes", s.requireSession(s.handleListCustomerNotes))
	mux.Handle("POST /api/customers/{id}/notes", s.requireSession(s.handleCreateNote))
	mux.Handle("PUT /api/customers/{id}/notes/{noteId}", s.requireSession(s.handleUpdateNote))
	mux.Handle("DELETE /api/customers/{id}/notes/{noteId}", s.requireSession(s.handleDeleteNote))

	mux.Handle("GET /api/products", s.requireSession(s.handleListProducts))
	mux.Handle("POST /api/products", s.requireSession(s.handleCreateProduct))
	mux.Handle("GET /api/products/{id}", s.requireSession(s.handleGetProduct))
	mux.Handle("PUT /api/products/{id}", s.requireSession(s.handleUpdateProduct))
	mux.Handle("DELETE /api/products/{id}", s.requireSession(s.handleDeleteProduct))

	mux.Handle("GET /api/orders", s.requireSession(s.handleListOrders))
	mux.Handle("POST /api/orders", s.requireSession(s.handleCreateOrder))

	mux.Handle("GET /api/stats", s.requireSession(s.handleStats))

	return s.withMetrics(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"postgres": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		checks["postgres"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := s.sessions.Ping(r.Context()); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, checks)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response", nil)
	}
}

func (s *Server) decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewInvalidInputError("Ongeldige JSON in request body")
	}
	return nil
}

// storeError maps store.ErrNotFound onto the standard taxonomy; anything
// else becomes a persistence error.
func (s *Server) storeError(resource, id string, err error) error {
	if err == store.ErrNotFound {
		return errors.NewNotFoundError(resource, id)
	}
	if store.IsInvalidInput(err) {
		return errors.NewValidationFailedError(err.Error())
	}
	if _, ok := err.(*errors.StandardError); ok {
		return err
	}
	return errors.NewPersistenceError(err)
}
