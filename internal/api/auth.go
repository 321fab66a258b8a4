package api

import (
	"net/http"
	"time"

	"backoffice/internal/common/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.responder.Respond(w, r, err)
		return
	}

	user, err := s.authn.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.responder.Respond(w, r, err)
		return
	}

	session, err := s.sessions.Create(r.Context(), user)
	if err != nil {
		s.responder.Respond(w, r, errors.NewInternalError(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.Info("user logged in", map[string]interface{}{
		"username": user.Username,
	})
	s.writeJSON(w, http.StatusOK, loginResponse{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		ExpiresAt:   session.ExpiresAt,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		// ?all=true invalidates every session of the user, not just this one.
		if r.URL.Query().Get("all") == "true" {
			if session, err := s.sessions.Get(r.Context(), cookie.Value); err == nil {
				count, err := s.sessions.DeleteAll(r.Context(), session.UserID)
				if err != nil {
					s.logger.WithError(err).Warn("failed to delete all sessions", nil)
				} else {
					s.logger.Info("all sessions deleted", map[string]interface{}{
						"userId": session.UserID,
						"count":  count,
					})
				}
			}
		}
		if err := s.sessions.Delete(r.Context(), cookie.Value); err != nil {
			s.logger.WithError(err).Warn("failed to delete session", nil)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "uitgelogd"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	s.writeJSON(w, http.StatusOK, session)
}
