package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBearerTokenAttached(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"balance": 42}`))
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, func() string { return "tok-123" })
	var out struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, client.Get(context.Background(), "/user/balance", nil, &out))
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Equal(t, 42.0, out.Balance)
}

func TestNoHeaderWhenLoggedOut(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, func() string { return "" })
	require.NoError(t, client.Get(context.Background(), "/health", nil, nil))
	require.Empty(t, gotAuth)
}

func TestUnauthorizedFiresHook(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid authentication credentials"}`))
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, func() string { return "stale" })
	hookFired := false
	client.OnUnauthorized = func() { hookFired = true }

	err := client.Get(context.Background(), "/user/profile", nil, nil)
	require.Error(t, err)
	require.True(t, hookFired)
	require.True(t, IsUnauthorized(err))
	require.Equal(t, "Invalid authentication credentials", err.Error())
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Insufficient balance"}`))
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, nil)
	err := client.Post(context.Background(), "/transactions/send-money", map[string]string{}, nil)
	require.Error(t, err)
	require.False(t, IsUnauthorized(err))
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Insufficient balance", apiErr.Detail)
}

func TestErrorWithoutDetailBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, nil)
	err := client.Get(context.Background(), "/anything", nil, nil)
	require.Error(t, err)
	require.Equal(t, "request failed with status 500", err.Error())
}
