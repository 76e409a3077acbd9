package bootstrap

import (
	"context"
	"testing"

	"project-dashboard/db"
	"project-dashboard/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(store *db.MemoryStore) Services {
	resolver := service.NewResolver(store.Employees(), store.Projects())
	return Services{
		Employees:   service.NewEmployeeService(store.Employees(), nil, nil),
		Projects:    service.NewProjectService(store.Projects(), nil, nil),
		Assignments: service.NewAssignmentService(store.Assignments(), resolver, nil, nil, nil),
	}
}

func TestInsertInitialData(t *testing.T) {
	ctx := context.Background()
	svc := newServices(db.NewMemoryStore())

	require.NoError(t, InsertInitialData(ctx, nil, true, svc))

	employees, err := svc.Employees.List(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 5)

	assignments, err := svc.Assignments.List(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, len(initialAssignments))
	for _, a := range assignments {
		assert.NotNil(t, a.Employee)
		assert.NotNil(t, a.Project)
	}

	onP001, err := svc.Assignments.ListByProject(ctx, "P001")
	require.NoError(t, err)
	assert.Len(t, onP001, 2)
}

func TestInsertInitialDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newServices(db.NewMemoryStore())

	require.NoError(t, InsertInitialData(ctx, nil, true, svc))
	require.NoError(t, InsertInitialData(ctx, nil, true, svc))

	assignments, err := svc.Assignments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, assignments, len(initialAssignments))
}

func TestInsertInitialDataDisabled(t *testing.T) {
	ctx := context.Background()
	svc := newServices(db.NewMemoryStore())

	require.NoError(t, InsertInitialData(ctx, nil, false, svc))

	employees, err := svc.Employees.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)
}
