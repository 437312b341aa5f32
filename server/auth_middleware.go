package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/myjarvis/auth-api/auth"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the resolved current user
	ContextKeyUser ContextKey = "user"
	// ContextKeyAccessToken stores the presented bearer token
	ContextKeyAccessToken ContextKey = "access_token"
)

// RequireBearerAuth resolves the current user from the Authorization header
// before the handler runs. Resolution goes through the auth service, so a
// token the provider rejects yields the same 401 as any other invalid token.
func (s *Server) RequireBearerAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.writeError(w, r, auth.NewError(auth.KindUnauthorized, "Missing or malformed Authorization header."))
			return
		}

		user, err := s.auth.GetUserByToken(r.Context(), token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		ctx = context.WithValue(ctx, ContextKeyAccessToken, token)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// UserFromContext returns the user resolved by RequireBearerAuth.
func UserFromContext(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(ContextKeyUser).(*auth.User)
	return user, ok
}

// AccessTokenFromContext returns the bearer token the current user presented.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ContextKeyAccessToken).(string)
	return token, ok
}
