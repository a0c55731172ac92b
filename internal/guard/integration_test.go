package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventsctl/internal/api"
	"eventsctl/internal/authz"
	"eventsctl/internal/session"
)

// newBackend serves just enough of the events API for a full login and
// guard cycle: one known account with a fixed role.
func newBackend(t *testing.T, role string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/user/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "tok-e2e"}`))
	})
	mux.HandleFunc("/user/check_role", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"` + role + `"`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginThenGuard_ManagerAccount(t *testing.T) {
	server := newBackend(t, "manager")
	ctx := context.Background()

	client := api.NewClient(server.URL)
	token, err := client.Login(ctx, "manager", "manager")
	require.NoError(t, err)

	store := session.NewMemStore()
	require.NoError(t, store.Save(session.Session{
		Token:    token,
		Username: "manager",
		Role:     authz.DefaultRole,
	}))

	g := New(store, authz.NewResolver(client, nil), nil)

	// The user administration view is admin-only.
	d := g.Evaluate(ctx, RequireRoles(authz.RoleAdmin))
	assert.Equal(t, StateForbidden, d.State)
	assert.Equal(t, authz.RoleManager, d.Role)

	// Event views are open to any authenticated account.
	d = g.Evaluate(ctx, Authenticated())
	assert.Equal(t, StateAuthorized, d.State)

	// The resolved role was written back to the session.
	assert.Equal(t, authz.RoleManager, store.Load().Role)
}

func TestLoginThenGuard_UnreachableRoleEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/check_role", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL)
	client.SetToken("tok")

	store := session.NewMemStore()
	require.NoError(t, store.Save(session.Session{
		Token:    "tok",
		Username: "alice",
		Role:     authz.RoleAdmin,
	}))

	g := New(store, authz.NewResolver(client, nil), nil)

	// Resolution failure downgrades to the default role: plain views stay
	// reachable, privileged views do not.
	d := g.Evaluate(context.Background(), Authenticated())
	assert.Equal(t, StateAuthorized, d.State)

	d = g.Evaluate(context.Background(), RequireRoles(authz.RoleAdmin))
	assert.Equal(t, StateForbidden, d.State)
}
