package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventsctl/internal/errors"
)

func TestLogin_AccessTokenField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/login", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "tok-123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	token, err := client.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "tok-123", client.Token)
}

func TestLogin_LegacyTokenField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "legacy-456"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	token, err := client.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	assert.Equal(t, "legacy-456", token)
}

func TestLogin_InvalidCredentialsKeepsServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Incorrect username or password"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCredentials))
	assert.Contains(t, err.Error(), "Incorrect username or password")
}

func TestLogin_NoTokenInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAPIDecode))
}

func TestRegister_DuplicateRemappedToValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/register", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "User exists"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Register(context.Background(), "alice", "secret")
	require.Error(t, err)

	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "User exists")
}

func TestCheckRole_PassesRawPayloadThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/check_role", r.URL.Path)
		require.Equal(t, "alice", r.URL.Query().Get("username"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"admin"`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	raw, err := client.CheckRole(context.Background(), "alice")
	require.NoError(t, err)

	assert.JSONEq(t, `"admin"`, string(raw))
}

func TestDoRequest_BearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-789")

	_, err := client.ListEvents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-789", gotAuth)
}

func TestDoRequest_ConnectionRefused(t *testing.T) {
	// A server that is immediately closed leaves a refused port behind.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url)
	_, err := client.ListEvents(context.Background())
	require.Error(t, err)

	assert.True(t, errors.IsNetwork(err))
}

func TestParseResponse_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   errors.ErrorCode
	}{
		{"unauthorized", http.StatusUnauthorized, errors.ErrCodeInvalidCredentials},
		{"forbidden", http.StatusForbidden, errors.ErrCodeForbidden},
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound},
		{"unprocessable", http.StatusUnprocessableEntity, errors.ErrCodeValidation},
		{"bad request", http.StatusBadRequest, errors.ErrCodeValidation},
		{"server error", http.StatusInternalServerError, errors.ErrCodeAPIResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"detail": "nope"}`))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.GetStats(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.Code(err))
		})
	}
}
