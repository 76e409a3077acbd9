package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"project-dashboard/db"
	"project-dashboard/models"
	"project-dashboard/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type testAPI struct {
	handler http.Handler
	anna    models.Employee
	apollo  models.Project
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	store := db.NewMemoryStore()
	clock := fixedClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

	api := &testAPI{
		anna:   models.Employee{ID: primitive.NewObjectID(), EmployeeID: "E001", FullName: "Anna Andersson", Email: "anna@example.com"},
		apollo: models.Project{ID: primitive.NewObjectID(), ProjectID: "P001", ProjectName: "Apollo"},
	}
	require.NoError(t, store.Employees().Insert(ctx, &api.anna))
	require.NoError(t, store.Projects().Insert(ctx, &api.apollo))
	bo := models.Employee{ID: primitive.NewObjectID(), EmployeeID: "E002", FullName: "Bo Berg", Email: "bo@example.com"}
	require.NoError(t, store.Employees().Insert(ctx, &bo))

	resolver := service.NewResolver(store.Employees(), store.Projects())
	api.handler = NewRouter(nil, Services{
		Assignments: service.NewAssignmentService(store.Assignments(), resolver, nil, clock, nil),
		Employees:   service.NewEmployeeService(store.Employees(), clock, nil),
		Projects:    service.NewProjectService(store.Projects(), clock, nil),
		Store:       store,
	}, Options{CORSOrigins: []string{"http://localhost:5173"}, RequestTimeout: time.Second})
	return api
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestCreateAssignmentReturnsJoinedRecord(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/projectassignments",
		`{"employee_id":"E001","project_id":"P001","start_date":1709251200000}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeObject(t, rec)
	emp, ok := body["employee_id"].(map[string]interface{})
	require.True(t, ok, "employee_id is an embedded object")
	assert.Equal(t, api.anna.ID.Hex(), emp["_id"])
	assert.Equal(t, "E001", emp["employee_id"])
	assert.Equal(t, "Anna Andersson", emp["full_name"])
	assert.Equal(t, "anna@example.com", emp["email"])

	proj, ok := body["project_id"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Apollo", proj["project_name"])
	assert.Equal(t, "2024-03-01T00:00:00Z", body["start_date"])
	assert.Contains(t, body, "createdAt")
	assert.Contains(t, body, "updatedAt")
}

func TestCreateAssignmentStartDateForms(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		name string
		date string
		want interface{}
	}{
		{"epoch milliseconds number", `1709251200000`, "2024-03-01T00:00:00Z"},
		{"digits as a string are not epoch", `"1709251200000"`, nil},
		{"bare year", `"2024"`, "2024-01-01T00:00:00Z"},
		{"year and month", `"2024-03"`, "2024-03-01T00:00:00Z"},
		{"numeric offset", `"2024-03-01T10:00:00+0100"`, "2024-03-01T09:00:00Z"},
		{"null defaults to now", `null`, "2025-03-10T12:00:00Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/api/projectassignments",
				`{"employee_id":"E001","project_id":"P001","start_date":`+tc.date+`}`)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			assert.Equal(t, tc.want, decodeObject(t, rec)["start_date"])
		})
	}
}

func TestCreateAssignmentUnknownReference(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/projectassignments", `{"employee_id":"E999","project_id":"P001"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `Employee not found (use ObjectId or employee_id like "E001")`, decodeObject(t, rec)["error"])

	rec = api.do(t, http.MethodPost, "/api/projectassignments", `{"employee_id":"E001","project_id":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeObject(t, rec)["error"], "Project not found")

	rec = api.do(t, http.MethodGet, "/api/projectassignments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateAssignmentMalformedBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/projectassignments", `{"employee_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAssignmentIDErrors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/projectassignments/not-hex", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID", decodeObject(t, rec)["error"])

	rec = api.do(t, http.MethodGet, "/api/projectassignments/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Assignment not found", decodeObject(t, rec)["error"])
}

func TestListByEmployeeRef(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/projectassignments", `{"employee_id":"E001","project_id":"P001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, ref := range []string{"E001", api.anna.ID.Hex()} {
		rec = api.do(t, http.MethodGet, "/api/projectassignments/employee/"+ref, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var views []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		assert.Len(t, views, 1, ref)
	}

	for _, path := range []string{
		"/api/projectassignments/employee/E002",
		"/api/projectassignments/employee/E404",
		"/api/projectassignments/project/P404",
	} {
		rec = api.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestPatchAndReplaceAssignment(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/projectassignments", `{"employee_id":"E001","project_id":"P001","start_date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeObject(t, rec)["_id"].(string)

	rec = api.do(t, http.MethodPatch, "/api/projectassignments/"+id, `{"employee_id":"E002"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeObject(t, rec)
	assert.Equal(t, "Bo Berg", body["employee_id"].(map[string]interface{})["full_name"])
	assert.Equal(t, "2024-01-01T00:00:00Z", body["start_date"], "omitted start_date is untouched")

	rec = api.do(t, http.MethodPatch, "/api/projectassignments/"+id, `{"start_date":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeObject(t, rec)["start_date"])

	rec = api.do(t, http.MethodPut, "/api/projectassignments/"+id, `{"employee_id":"E001"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/projectassignments/"+id,
		`{"employee_id":"`+api.anna.ID.Hex()+`","project_id":"P001","start_date":"2023-05-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2023-05-01T00:00:00Z", decodeObject(t, rec)["start_date"])

	rec = api.do(t, http.MethodPatch, "/api/projectassignments/"+primitive.NewObjectID().Hex(), `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAssignment(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/projectassignments", `{"employee_id":"E001","project_id":"P001"}`)
	id := decodeObject(t, rec)["_id"].(string)

	rec = api.do(t, http.MethodDelete, "/api/projectassignments/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Assignment deleted successfully", decodeObject(t, rec)["message"])

	rec = api.do(t, http.MethodDelete, "/api/projectassignments/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/employees", `{"employee_id":"E003","full_name":"Cecilia","email":"c@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeObject(t, rec)["_id"].(string)

	rec = api.do(t, http.MethodPost, "/api/employees", `{"employee_id":"E003","full_name":"Other","email":"o@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/employees/"+id, `{"full_name":"Cecilia Ek"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cecilia Ek", decodeObject(t, rec)["full_name"])

	rec = api.do(t, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "E001", all[0].EmployeeID)

	rec = api.do(t, http.MethodDelete, "/api/employees/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Employee deleted successfully", decodeObject(t, rec)["message"])

	rec = api.do(t, http.MethodGet, "/api/employees/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/projects", `{"project_id":"P002","project_name":"Gemini","project_description":"Orbit"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeObject(t, rec)
	assert.Equal(t, "Orbit", body["project_description"])

	rec = api.do(t, http.MethodPost, "/api/projects", `{"project_id":"P003"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/projects/xyz", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDanglingReferenceSerialisesAsNull(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/projectassignments", `{"employee_id":"E001","project_id":"P001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeObject(t, rec)["_id"].(string)

	rec = api.do(t, http.MethodDelete, "/api/projects/"+api.apollo.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/projectassignments/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeObject(t, rec)
	assert.Contains(t, body, "project_id")
	assert.Nil(t, body["project_id"])
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("no reachable servers") }

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := NewRouter(nil, Services{Store: downStore{}}, Options{})
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/projectassignments", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestFieldsGet(t *testing.T) {
	f, err := decodeFields(strings.NewReader(`{"a":"x","b":null,"c":42,"d":true}`))
	require.NoError(t, err)

	v, ok := f.get("a")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	v, ok = f.get("b")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, "42", f.str("c"))
	assert.Equal(t, "true", f.str("d"))
	assert.Nil(t, f.ptr("missing"))

	require.NotNil(t, f.date("c"))
	assert.Equal(t, "1970-01-01T00:00:00.042Z", *f.date("c"))
	require.NotNil(t, f.date("b"))
	assert.Equal(t, "", *f.date("b"))
	assert.Equal(t, "x", *f.date("a"))
	assert.Nil(t, f.date("missing"))
}
