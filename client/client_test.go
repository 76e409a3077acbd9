package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentsDecodesJoinedRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projectassignments", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"65f000000000000000000001",
			 "employee_id":{"_id":"65f000000000000000000002","employee_id":"E001","full_name":"Anna","email":"anna@example.com"},
			 "project_id":null,
			 "start_date":"2024-03-01T00:00:00Z",
			 "createdAt":"2024-03-01T00:00:00Z","updatedAt":"2024-03-01T00:00:00Z"}
		]`))
	}))
	defer srv.Close()

	views, err := New(srv.URL+"/api/", nil).Assignments(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "65f000000000000000000001", views[0].ID.Hex())
	require.NotNil(t, views[0].Employee)
	assert.Equal(t, "Anna", views[0].Employee.FullName)
	assert.Nil(t, views[0].Project)
	require.NotNil(t, views[0].StartDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), views[0].StartDate.UTC())
}

func TestEmployeesAndProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/employees":
			_, _ = w.Write([]byte(`[{"_id":"65f000000000000000000002","employee_id":"E001","full_name":"Anna","email":"a@example.com"}]`))
		case "/projects":
			_, _ = w.Write([]byte(`[{"_id":"65f000000000000000000003","project_id":"P001","project_name":"Apollo","project_description":""}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	employees, err := c.Employees(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "E001", employees[0].EmployeeID)

	projects, err := c.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Apollo", projects[0].ProjectName)
}

func TestErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"list assignments: server selection timeout"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Assignments(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "server selection timeout")
}

func TestContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL, nil).Projects(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
