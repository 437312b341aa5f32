package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/myjarvis/auth-api/auth"
)

const contentTypeJSON = "application/json; charset=utf-8"

type errorResponse struct {
	Detail string `json:"detail"`
}

// StatusForKind is the single mapping from domain error kind to HTTP status.
// The default arm guarantees total coverage: an unmapped kind degrades to a
// 400, never a 500.
func StatusForKind(kind auth.Kind) int {
	switch kind {
	case auth.KindAuthenticationFailure, auth.KindInvalidToken, auth.KindEmailNotConfirmed, auth.KindUnauthorized:
		return http.StatusUnauthorized
	case auth.KindAuthorizationFailure:
		return http.StatusForbidden
	case auth.KindAlreadyExists:
		return http.StatusConflict
	case auth.KindNotFound:
		return http.StatusNotFound
	case auth.KindValidationFailure:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError renders err at the HTTP boundary. Domain errors carry their own
// user-safe message; anything else is an unexpected failure and becomes an
// opaque 500 so provider or internal details never reach a client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *auth.Error
	if !errors.As(err, &domainErr) {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
		return
	}

	status := StatusForKind(domainErr.Kind)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	s.writeJSON(w, status, errorResponse{Detail: domainErr.Message})
}
