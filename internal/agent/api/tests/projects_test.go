package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/projectkeeper/internal/agent/api"
	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/utils"
)

func testProject(id int64) models.Project {
	return models.Project{
		ID:                 id,
		Name:               "Website redesign",
		Status:             "active",
		Deadline:           models.NewDate(2025, time.June, 30),
		AssignedTeamMember: "Alice",
		Budget:             1500.5,
		CreatedAt:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestClient_ListProjects_EncodesFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "active", r.URL.Query().Get("status"))
		require.Equal(t, "50% off & more", r.URL.Query().Get("search"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Project{testProject(1), testProject(2)})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	got, err := c.ListProjects("tok", models.ProjectFilter{Status: "active", Search: " 50% off & more "})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, testProject(1), got[0])
}

func TestClient_ListProjects_NoFilters_NoQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "[]")
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	got, err := c.ListProjects("tok", models.ProjectFilter{})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestClient_GetProject_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"project not found"}`)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	_, err := c.GetProject("tok", 42)
	require.Error(t, err)
	require.True(t, errors.Is(err, serr.ErrNotFound))
	require.Contains(t, err.Error(), "project not found")
}

func TestClient_CreateProject_SendsInput(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Website redesign", body["name"])
		require.Equal(t, "active", body["status"])
		require.Equal(t, "2025-06-30", body["deadline"])
		require.Equal(t, "Alice", body["assigned_team_member"])
		require.Equal(t, 1500.5, body["budget"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(testProject(7))
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	got, err := c.CreateProject("tok", models.FromProject(testProject(0)))
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
}

func TestClient_UpdateProject_UsesPUT(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/7", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		var in models.ProjectInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "completed", *in.Status)

		p := testProject(7)
		p.Status = "completed"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	in := models.FromProject(testProject(7))
	in.Status = utils.Ptr("completed")

	got, err := c.UpdateProject("tok", 7, in)
	require.NoError(t, err)
	require.Equal(t, "completed", got.Status)
}

func TestClient_DeleteProject_NoContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/7", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	require.NoError(t, c.DeleteProject("tok", 7))
}
