// Package auth implements the six authentication operations as a facade over
// the external identity provider, together with the domain error taxonomy and
// the provider error translator. Nothing here stores state: sessions, users
// and credentials all live inside the provider.
package auth

import (
	"context"

	"github.com/myjarvis/auth-api/provider"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Fixed response messages. The password-reset message must be byte-identical
// whether or not the email is registered.
const (
	MessageRegistered    = "Registration successful. Please check your email to confirm."
	MessageLoggedOut     = "Logout successful."
	MessagePasswordReset = "If the email is registered, a reset link has been sent."
)

// Session relays the provider-issued tokens unchanged. It is only ever
// constructed from a complete provider response.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64
}

// User is a read-only projection of the provider's user record.
type User struct {
	ID             string
	Email          string
	EmailConfirmed bool
}

// Login bundles the session and user returned by a successful sign-in or
// refresh.
type Login struct {
	Session Session
	User    User
}

// Service is the auth operations facade. All calls are request-scoped and
// synchronous; the only shared state is the provider client, which is safe
// for concurrent use.
type Service struct {
	provider provider.Client
	log      zerolog.Logger
}

func NewService(client provider.Client, log zerolog.Logger) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] provider client is required")
	}
	return &Service{
		provider: client,
		log:      log.With().Str("component", "auth").Logger(),
	}, nil
}

// Register signs the user up with the provider. The confirmation email links
// back to redirectURL.
func (s *Service) Register(ctx context.Context, email, password, redirectURL string) (string, error) {
	if _, err := s.provider.SignUp(ctx, email, password, redirectURL); err != nil {
		return "", Translate(OpRegister, err)
	}
	return MessageRegistered, nil
}

// Login exchanges credentials for a session. A provider response missing
// either session or user violates the provider contract and is returned as a
// plain error, not a domain error, so it surfaces as a 500 instead of being
// mistaken for an auth failure.
func (s *Service) Login(ctx context.Context, email, password string) (*Login, error) {
	resp, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, Translate(OpLogin, err)
	}
	return loginFromResponse(resp)
}

// Logout revokes the session with the provider and always reports success.
// Once the client discards its token the observable state is logged out,
// regardless of provider-side session bookkeeping.
func (s *Service) Logout(ctx context.Context, accessToken string) string {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		s.log.Debug().Err(err).Msg("provider sign-out failed; reporting success anyway")
	}
	return MessageLoggedOut
}

// RefreshSession exchanges a refresh token for a new session. Any provider
// failure maps to InvalidToken.
func (s *Service) RefreshSession(ctx context.Context, refreshToken string) (*Login, error) {
	resp, err := s.provider.RefreshSession(ctx, refreshToken)
	if err != nil {
		return nil, Translate(OpRefresh, err)
	}
	return loginFromResponse(resp)
}

// RequestPasswordReset asks the provider to send a reset email. Failures are
// suppressed without translation: the response must not reveal whether the
// email is registered.
func (s *Service) RequestPasswordReset(ctx context.Context, email, redirectURL string) string {
	if err := s.provider.ResetPasswordForEmail(ctx, email, redirectURL); err != nil {
		s.log.Debug().Err(err).Msg("password reset request failed; suppressing")
	}
	return MessagePasswordReset
}

// GetUserByToken resolves the user behind an access token. Any provider
// failure maps to InvalidToken.
func (s *Service) GetUserByToken(ctx context.Context, accessToken string) (*User, error) {
	providerUser, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		return nil, Translate(OpVerify, err)
	}
	if providerUser == nil {
		return nil, errors.New("provider returned no user for a validated token")
	}
	user := userFromProvider(providerUser)
	return &user, nil
}

func loginFromResponse(resp *provider.TokenResponse) (*Login, error) {
	if resp == nil || resp.Session == nil || resp.User == nil {
		return nil, errors.New("provider returned an incomplete token response")
	}
	return &Login{
		Session: Session{
			AccessToken:  resp.Session.AccessToken,
			RefreshToken: resp.Session.RefreshToken,
			ExpiresAt:    resp.Session.ExpiresAt,
		},
		User: userFromProvider(resp.User),
	}, nil
}

func userFromProvider(u *provider.User) User {
	return User{
		ID:             u.ID.String(),
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmedAt != nil,
	}
}
