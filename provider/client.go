// Package provider is the client for the hosted identity provider's REST
// API. The provider owns credential storage, session issuance, and token
// validation; this service only relays its responses.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the token bundle issued by the provider. Tokens are opaque
// strings and are passed through to callers unchanged.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	TokenType    string `json:"token_type"`
}

// User mirrors the provider's user record.
type User struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// TokenResponse is what the provider returns from sign-in, sign-up and
// refresh calls. Session is nil when the provider issued no tokens (e.g. a
// sign-up that still needs email confirmation).
type TokenResponse struct {
	Session *Session
	User    *User
}

// APIError is a failure reported by the provider itself: a free-text message
// plus the provider's numeric code when one was supplied. Transport-level
// failures (DNS, timeouts) are returned as plain wrapped errors instead.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
	}
	return "provider error: " + e.Message
}

// Client is the slice of the provider's surface the auth service depends on.
type Client interface {
	SignUp(ctx context.Context, email, password, redirectTo string) (*TokenResponse, error)
	SignInWithPassword(ctx context.Context, email, password string) (*TokenResponse, error)
	SignOut(ctx context.Context, accessToken string) error
	RefreshSession(ctx context.Context, refreshToken string) (*TokenResponse, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	GetUser(ctx context.Context, accessToken string) (*User, error)
}
