package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/common/errors"
	"backoffice/internal/common/metrics"
	"backoffice/internal/models"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionFromContext returns the session attached by requireSession.
func sessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionContextKey).(*models.Session)
	return session
}

// requireSession resolves the session cookie before the handler runs.
// Requests without a live session get a 401.
func (s *Server) requireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cookieName)
		if err != nil {
			s.responder.Respond(w, r, errors.NewSessionInvalidError("Niet ingelogd"))
			return
		}

		session, err := s.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			s.responder.Respond(w, r, errors.NewSessionInvalidError("Sessie is verlopen"))
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMetrics records request counts and latency per method and route. The
// matched mux pattern is used as the route label so task and customer ids do
// not explode the cardinality.
func (s *Server) withMetrics(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		mux.ServeHTTP(recorder, r)

		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
