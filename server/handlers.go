package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/myjarvis/auth-api/auth"
)

const maxRequestBodySize = 1 << 20

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    int64        `json:"expires_at"`
	TokenType    string       `json:"token_type"`
	User         userResponse `json:"user"`
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func decodeJSON(r *http.Request, out any) error {
	body := io.LimitReader(r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return auth.NewError(auth.KindValidationFailure, "invalid request body")
	}
	return nil
}

func tokenResponseFromLogin(login *auth.Login) tokenResponse {
	return tokenResponse{
		AccessToken:  login.Session.AccessToken,
		RefreshToken: login.Session.RefreshToken,
		ExpiresAt:    login.Session.ExpiresAt,
		TokenType:    "bearer",
		User: userResponse{
			ID:             login.User.ID,
			Email:          login.User.Email,
			EmailConfirmed: login.User.EmailConfirmed,
		},
	}
}

// RegisterHandler signs a new user up. Weak passwords and malformed emails
// are rejected with a 422 before the auth service is invoked.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := ValidateRegistration(req.Email, req.Password); err != nil {
			s.writeError(w, r, err)
			return
		}

		message, err := s.auth.Register(r.Context(), req.Email, req.Password, s.config.GetAuthRedirectURL())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, messageResponse{Message: message})
	}
}

// LoginHandler exchanges credentials for the provider-issued token pair.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := ValidateEmail(req.Email); err != nil {
			s.writeError(w, r, err)
			return
		}

		login, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, tokenResponseFromLogin(login))
	}
}

// LogoutHandler always reports success. RequireBearerAuth has already
// resolved the current user, so the token in context is known to the
// provider; whatever happens during sign-out, the client is logged out.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := AccessTokenFromContext(r.Context())
		message := s.auth.Logout(r.Context(), token)
		s.writeJSON(w, http.StatusOK, messageResponse{Message: message})
	}
}

// RefreshHandler exchanges a refresh token for a new session.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if req.RefreshToken == "" {
			s.writeError(w, r, auth.NewError(auth.KindValidationFailure, "refresh_token is required"))
			return
		}

		login, err := s.auth.RefreshSession(r.Context(), req.RefreshToken)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, tokenResponseFromLogin(login))
	}
}

// ResetPasswordHandler requests a reset email. The response is the same
// whether or not the email is registered.
func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := ValidateEmail(req.Email); err != nil {
			s.writeError(w, r, err)
			return
		}

		message := s.auth.RequestPasswordReset(r.Context(), req.Email, s.config.GetPasswordResetRedirectURL())
		s.writeJSON(w, http.StatusOK, messageResponse{Message: message})
	}
}

// VerifyHandler reports the user behind the presented bearer token.
func (s *Server) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			s.writeError(w, r, auth.NewError(auth.KindUnauthorized, "Not authenticated."))
			return
		}
		s.writeJSON(w, http.StatusOK, verifyResponse{
			Valid:  true,
			UserID: user.ID,
			Email:  user.Email,
		})
	}
}

// HealthHandler reports liveness plus build identity.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":      "healthy",
			"app":         s.config.GetAppName(),
			"version":     s.config.GetVersion(),
			"environment": s.env,
		})
	}
}
