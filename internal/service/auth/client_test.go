package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/zhouzirui/mindful/client/pkg/errors"
)

func TestClientLoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "a@b.c", creds.Email)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL).Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "tok", token)
}

func TestClientFailureCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeAuthFailed))
	require.Equal(t, "Login failed: Invalid credentials", apperrors.Message(err))
}

func TestClientFailureWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Signup(context.Background(), SignupRequest{Email: "a@b.c", Password: "pw"})
	require.Equal(t, "Signup failed: Please try again.", apperrors.Message(err))

	err = NewClient(srv.URL).VerifyOTP(context.Background(), "a@b.c", "1234")
	require.Equal(t, "Verification failed: Please try again.", apperrors.Message(err))
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNetwork))
	require.Equal(t, MsgUnavailable, apperrors.Message(err))
}
