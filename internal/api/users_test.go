package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsers_DecodesRowArrays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/get_users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[1, "alice", "admin"], [2, "bob", "user"]]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	users, err := client.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, User{ID: 1, Username: "alice", Role: "admin"}, users[0])
	assert.Equal(t, User{ID: 2, Username: "bob", Role: "user"}, users[1])
}

func TestChangeRole_BodyShape(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/user/change_role", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.ChangeRole(context.Background(), 2, "manager"))

	assert.Equal(t, float64(2), gotBody["id"])
	assert.Equal(t, "manager", gotBody["new_role"])
}

func TestDeleteUser_PathCarriesID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.DeleteUser(context.Background(), 42))

	assert.Equal(t, "/user/delete_user/42", gotPath)
}
