package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// Responder writes standardized error responses and logs them with enough
// context to diagnose.
type Responder struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewResponder(logger Logger) *Responder {
	return &Responder{logger: logger}
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Respond normalizes err to a StandardError, logs it, and writes the
// {error, details} body with the mapped HTTP status.
func (r *Responder) Respond(w http.ResponseWriter, req *http.Request, err error) {
	stdErr := r.normalizeError(err)
	status := HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"method":    req.Method,
		"path":      req.URL.Path,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
		"status":    status,
	}
	if status >= http.StatusInternalServerError {
		r.logger.Error(stdErr.Message, fields)
	} else {
		r.logger.Warn(stdErr.Message, fields)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error:   stdErr.Message,
		Details: stdErr.Details,
	})
}

// normalizeError ensures we always have a StandardError.
func (r *Responder) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternalError,
		Message:   "Interne Server Fout",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
