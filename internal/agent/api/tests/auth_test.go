package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/models"
)

func TestClient_Register_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, models.RegisterRequest{
			Name:            "Alice",
			Email:           "alice@example.com",
			Password:        "secret1",
			ConfirmPassword: "secret1",
		}, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "User Registered Successfully!"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	msg, err := api.NewClient(srv.URL, false).Register("Alice", "alice@example.com", "secret1", "secret1")
	require.NoError(t, err)
	require.Equal(t, "User Registered Successfully!", msg)
}

func TestClient_Login_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice@example.com", req.Email)
		require.Equal(t, "secret1", req.Password)

		json.NewEncoder(w).Encode(models.LoginResponse{AccessToken: "a1", RefreshToken: "r1"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := api.NewClient(srv.URL, false).Login("alice@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "a1", resp.AccessToken)
	require.Equal(t, "r1", resp.RefreshToken)
}

func TestClient_Refresh_SendsRefreshAsBearer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer r1", r.Header.Get("Authorization"))
		require.Empty(t, r.Header.Get("Content-Type"))

		json.NewEncoder(w).Encode(models.RefreshResponse{AccessToken: "a2"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := api.NewClient(srv.URL, false).Refresh("r1")
	require.NoError(t, err)
	require.Equal(t, "a2", resp.AccessToken)
}

func TestClient_WhoAmI_UsesAccessToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/protected", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "Bearer a1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Hello, user 3f1c!"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	msg, err := api.NewClient(srv.URL, false).WhoAmI("a1")
	require.NoError(t, err)
	require.Equal(t, "Hello, user 3f1c!", msg)
}

func TestClient_WhoAmI_Unauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/protected", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Unauthorized"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := api.NewClient(srv.URL, false).WhoAmI("expired")
	require.Error(t, err)
	require.True(t, api.IsUnauthorized(err))
	require.Contains(t, err.Error(), "Unauthorized")
}

func TestClient_Users(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.UserSummary{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	users, err := api.NewClient(srv.URL, false).Users()
	require.NoError(t, err)
	require.Equal(t, []models.UserSummary{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}, users)
}
