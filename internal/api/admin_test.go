package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/stats", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tableCount": 7, "eventCount": 12, "teacherCount": 4,
			"locationCount": 3, "eventTypeCount": 5, "scaleCount": 3,
			"participantCategoryCount": 2, "userCount": 6
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	stats, err := client.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TableCount)
	assert.Equal(t, 12, stats.EventCount)
	assert.Equal(t, 6, stats.UserCount)
}

func TestTableRows_RendersHeterogeneousCells(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/tables/teacher", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[1, "Ivanova", null], [2, "Petrov", 3.5]]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	rows, err := client.TableRows(context.Background(), "teacher")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"1", "Ivanova", ""}, rows[0])
	assert.Equal(t, []string{"2", "Petrov", "3.5"}, rows[1])
}

func TestDeleteTableRecord(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.DeleteTableRecord(context.Background(), "scale", 3))

	assert.Equal(t, "/admin/tables/scale/3", gotPath)
}

func TestAdminTables_UsersListedFirst(t *testing.T) {
	tables := AdminTables()
	require.NotEmpty(t, tables)
	assert.Equal(t, "users", tables[0])
	assert.Contains(t, tables, "participant_category")
}
