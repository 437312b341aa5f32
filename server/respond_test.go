package server_test

import (
	"net/http"
	"testing"

	"github.com/myjarvis/auth-api/auth"
	"github.com/myjarvis/auth-api/provider"
	"github.com/myjarvis/auth-api/provider/providerfake"
	"github.com/myjarvis/auth-api/server"
	"github.com/stretchr/testify/require"
)

// Every domain kind must map to exactly one status, and none to a 500.
func TestStatusMappingCoversAllKinds(t *testing.T) {
	expected := map[auth.Kind]int{
		auth.KindAuthenticationFailure: http.StatusUnauthorized,
		auth.KindInvalidToken:          http.StatusUnauthorized,
		auth.KindEmailNotConfirmed:     http.StatusUnauthorized,
		auth.KindUnauthorized:          http.StatusUnauthorized,
		auth.KindAuthorizationFailure:  http.StatusForbidden,
		auth.KindAlreadyExists:         http.StatusConflict,
		auth.KindNotFound:              http.StatusNotFound,
		auth.KindValidationFailure:     http.StatusUnprocessableEntity,
	}

	for kind, want := range expected {
		t.Run(string(kind), func(t *testing.T) {
			got := server.StatusForKind(kind)
			require.Equal(t, want, got)
			require.NotEqual(t, http.StatusInternalServerError, got)
		})
	}

	t.Run("unmapped kind degrades to 400", func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, server.StatusForKind(auth.Kind("future_kind")))
	})
}

// The error body carries only the detail field; provider text never appears
// except where the translator deliberately forwarded it.
func TestErrorBodyShape(t *testing.T) {
	fake := providerfake.NewFakeClient()
	fake.SignInErr = &provider.APIError{Code: 500, Message: "pq: connection refused at /var/lib/gotrue"}
	srv := newTestServer(t, fake)

	recorder := doJSON(t, srv, http.MethodPost, "/auth/login", `{"email":"fauza@gmail.com","password":"Password123"}`, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	body := decodeBody(t, recorder)
	require.Len(t, body, 1)
	require.NotContains(t, body["detail"], "pq:")
	require.NotContains(t, body["detail"], "/var/lib")
}
