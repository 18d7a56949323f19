package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/projectkeeper/internal/agent/api"
	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

func testUser() models.User {
	return models.User{
		ID:        uuid.MustParse("7f0c1c55-5d7c-4a5e-9e39-6a9f0b7f3a11"),
		Email:     "test@example.com",
		Name:      "Test",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestClient_Register_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test@example.com", req.Email)
		require.Equal(t, "StrongPass123", req.Password)
		require.Equal(t, "Test", req.Name)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.AuthResponse{User: testUser(), Token: "tok-1"})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	resp, err := c.Register("test@example.com", "StrongPass123", "Test")
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.Token)
	require.Equal(t, testUser(), resp.User)
}

func TestClient_Register_Conflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"error":"email already registered"}`)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	_, err := c.Register("test@example.com", "StrongPass123", "Test")
	require.Error(t, err)
	require.True(t, errors.Is(err, serr.ErrAlreadyExists))
	require.Contains(t, err.Error(), "email already registered")
}

func TestClient_Login_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test@example.com", req.Email)
		require.Equal(t, "StrongPass123", req.Password)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AuthResponse{User: testUser(), Token: "tok-1"})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	resp, err := c.Login("test@example.com", "StrongPass123")
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.Token)
	require.Equal(t, "test@example.com", resp.User.Email)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"invalid credentials"}`)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	_, err := c.Login("test@example.com", "wrong")
	require.Error(t, err)
	require.True(t, errors.Is(err, serr.ErrUnauthorized))
	require.Contains(t, err.Error(), "invalid credentials")
}

func TestClient_Me_Success_UsesBearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.MeResponse{User: testUser()})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	u, err := c.Me("tok-1")
	require.NoError(t, err)
	require.Equal(t, testUser(), u)
}
