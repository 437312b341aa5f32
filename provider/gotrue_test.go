package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myjarvis/auth-api/provider"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-anon-key"

func newClient(t *testing.T, handler http.HandlerFunc) *provider.HTTPClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return provider.NewHTTPClient(ts.URL, testAPIKey, zerolog.Nop())
}

func TestSignInWithPassword(t *testing.T) {
	t.Run("success decodes session and user", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/token", r.URL.Path)
			require.Equal(t, "password", r.URL.Query().Get("grant_type"))
			require.Equal(t, testAPIKey, r.Header.Get("apikey"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "fauza@gmail.com", body["email"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"access_token": "access-token-abc",
				"token_type": "bearer",
				"expires_at": 1790000000,
				"refresh_token": "refresh-token-xyz",
				"user": {
					"id": "6f1b4f27-52d3-47a3-9c3b-9a71f8b2e001",
					"email": "fauza@gmail.com",
					"email_confirmed_at": "2026-01-15T10:00:00Z"
				}
			}`))
		})

		resp, err := client.SignInWithPassword(context.Background(), "fauza@gmail.com", "Password123")
		require.NoError(t, err)
		require.NotNil(t, resp.Session)
		require.Equal(t, "access-token-abc", resp.Session.AccessToken)
		require.Equal(t, "refresh-token-xyz", resp.Session.RefreshToken)
		require.Equal(t, int64(1790000000), resp.Session.ExpiresAt)
		require.NotNil(t, resp.User)
		require.Equal(t, "fauza@gmail.com", resp.User.Email)
		require.NotNil(t, resp.User.EmailConfirmedAt)
	})

	t.Run("error body becomes an APIError", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":400,"msg":"Invalid login credentials"}`))
		})

		_, err := client.SignInWithPassword(context.Background(), "fauza@gmail.com", "wrong")
		var apiErr *provider.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 400, apiErr.Code)
		require.Equal(t, "Invalid login credentials", apiErr.Message)
	})

	t.Run("error_description variant is parsed", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Email not confirmed"}`))
		})

		_, err := client.SignInWithPassword(context.Background(), "fauza@gmail.com", "Password123")
		var apiErr *provider.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "Email not confirmed", apiErr.Message)
	})

	t.Run("unparseable error body falls back to status text", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		})

		_, err := client.SignInWithPassword(context.Background(), "fauza@gmail.com", "Password123")
		var apiErr *provider.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadGateway, apiErr.Code)
		require.Equal(t, "Bad Gateway", apiErr.Message)
	})
}

func TestSignUp(t *testing.T) {
	t.Run("redirect_to is passed as a query parameter", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/signup", r.URL.Path)
			require.Equal(t, "http://localhost:3000/auth/callback", r.URL.Query().Get("redirect_to"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "6f1b4f27-52d3-47a3-9c3b-9a71f8b2e001",
				"email": "fauza@gmail.com"
			}`))
		})

		resp, err := client.SignUp(context.Background(), "fauza@gmail.com", "Password123", "http://localhost:3000/auth/callback")
		require.NoError(t, err)
		require.Nil(t, resp.Session)
		require.NotNil(t, resp.User)
		require.Equal(t, "fauza@gmail.com", resp.User.Email)
		require.Nil(t, resp.User.EmailConfirmedAt)
	})
}

func TestRefreshSession(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "refresh-token-xyz", body["refresh_token"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "rotated-access",
			"refresh_token": "rotated-refresh",
			"expires_at": 1790000600,
			"user": {"id": "6f1b4f27-52d3-47a3-9c3b-9a71f8b2e001", "email": "fauza@gmail.com"}
		}`))
	})

	resp, err := client.RefreshSession(context.Background(), "refresh-token-xyz")
	require.NoError(t, err)
	require.Equal(t, "rotated-access", resp.Session.AccessToken)
	require.Equal(t, "rotated-refresh", resp.Session.RefreshToken)
}

func TestSignOut(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/logout", r.URL.Path)
		require.Equal(t, "Bearer access-token-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.SignOut(context.Background(), "access-token-abc"))
}

func TestResetPasswordForEmail(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recover", r.URL.Path)
		require.Equal(t, "http://localhost:3000/auth/reset-password", r.URL.Query().Get("redirect_to"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "fauza@gmail.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, client.ResetPasswordForEmail(context.Background(), "fauza@gmail.com", "http://localhost:3000/auth/reset-password"))
}

func TestGetUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/user", r.URL.Path)
			require.Equal(t, "Bearer access-token-abc", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "6f1b4f27-52d3-47a3-9c3b-9a71f8b2e001",
				"email": "fauza@gmail.com",
				"email_confirmed_at": "2026-01-15T10:00:00Z"
			}`))
		})

		user, err := client.GetUser(context.Background(), "access-token-abc")
		require.NoError(t, err)
		require.Equal(t, "fauza@gmail.com", user.Email)
		require.NotNil(t, user.EmailConfirmedAt)
	})

	t.Run("rejected token", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"msg":"invalid JWT: unable to parse or verify signature"}`))
		})

		_, err := client.GetUser(context.Background(), "garbage")
		var apiErr *provider.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 401, apiErr.Code)
	})
}
