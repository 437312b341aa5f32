package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout   = 10 * time.Second
	maxErrorBodySize = 1 << 16
)

// HTTPClient talks to a GoTrue-compatible auth endpoint (Supabase Auth and
// self-hosted GoTrue expose the same routes).
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the auth endpoint at baseURL. The API
// key is sent with every request as the provider requires.
func NewHTTPClient(baseURL, apiKey string, log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log.With().Str("component", "provider").Logger(),
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrantRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type recoverRequest struct {
	Email string `json:"email"`
}

// tokenPayload covers both shapes the provider responds with: a flat token
// grant (access_token at the top level, user nested) and a bare user record
// (sign-up pending email confirmation).
type tokenPayload struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`

	ID               *uuid.UUID `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (p *tokenPayload) toTokenResponse() *TokenResponse {
	resp := &TokenResponse{User: p.User}
	if p.AccessToken != "" {
		resp.Session = &Session{
			AccessToken:  p.AccessToken,
			RefreshToken: p.RefreshToken,
			ExpiresAt:    p.ExpiresAt,
			TokenType:    p.TokenType,
		}
	}
	if resp.User == nil && p.ID != nil {
		resp.User = &User{
			ID:               *p.ID,
			Email:            p.Email,
			EmailConfirmedAt: p.EmailConfirmedAt,
			CreatedAt:        p.CreatedAt,
		}
	}
	return resp
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password, redirectTo string) (*TokenResponse, error) {
	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}
	var payload tokenPayload
	if err := c.do(ctx, http.MethodPost, "/signup", query, signUpRequest{Email: email, Password: password}, "", &payload); err != nil {
		return nil, err
	}
	return payload.toTokenResponse(), nil
}

func (c *HTTPClient) SignInWithPassword(ctx context.Context, email, password string) (*TokenResponse, error) {
	query := url.Values{"grant_type": {"password"}}
	var payload tokenPayload
	if err := c.do(ctx, http.MethodPost, "/token", query, passwordGrantRequest{Email: email, Password: password}, "", &payload); err != nil {
		return nil, err
	}
	return payload.toTokenResponse(), nil
}

func (c *HTTPClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, accessToken, nil)
}

func (c *HTTPClient) RefreshSession(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	query := url.Values{"grant_type": {"refresh_token"}}
	var payload tokenPayload
	if err := c.do(ctx, http.MethodPost, "/token", query, refreshGrantRequest{RefreshToken: refreshToken}, "", &payload); err != nil {
		return nil, err
	}
	return payload.toTokenResponse(), nil
}

func (c *HTTPClient) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}
	return c.do(ctx, http.MethodPost, "/recover", query, recoverRequest{Email: email}, "", nil)
}

func (c *HTTPClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, accessToken, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, accessToken string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode provider request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "build provider request")
	}
	req.Header.Set("apikey", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "provider %s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return errors.Wrap(err, "read provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, data)
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("msg", apiErr.Message).Msg("provider rejected request")
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, "decode provider response")
		}
	}
	return nil
}

// errorPayload covers the error body variants GoTrue emits across versions.
type errorPayload struct {
	Code             int    `json:"code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func parseAPIError(status int, body []byte) *APIError {
	payload := errorPayload{}
	_ = json.Unmarshal(body, &payload)

	message := payload.Msg
	if message == "" {
		message = payload.Message
	}
	if message == "" {
		message = payload.ErrorDescription
	}
	if message == "" {
		message = payload.ErrorField
	}
	if message == "" {
		message = http.StatusText(status)
	}

	code := payload.Code
	if code == 0 {
		code = status
	}
	return &APIError{Code: code, Message: message}
}
