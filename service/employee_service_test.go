package service

import (
	"context"
	"testing"
	"time"

	"project-dashboard/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newEmployeeService() (*EmployeeService, *stubClock) {
	clock := &stubClock{now: time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)}
	return NewEmployeeService(db.NewMemoryStore().Employees(), clock, nil), clock
}

func TestEmployeeCreateTrimsAndStamps(t *testing.T) {
	svc, clock := newEmployeeService()

	e, err := svc.Create(context.Background(), EmployeeInput{EmployeeID: " E001 ", FullName: "Anna Andersson ", Email: "Anna@Example.com"})
	require.NoError(t, err)
	assert.False(t, e.ID.IsZero())
	assert.Equal(t, "E001", e.EmployeeID)
	assert.Equal(t, "Anna Andersson", e.FullName)
	assert.Equal(t, "anna@example.com", e.Email)
	assert.Equal(t, clock.now, e.CreatedAt)
	assert.Equal(t, clock.now, e.UpdatedAt)
}

func TestEmployeeCreateValidation(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	tests := []struct {
		name  string
		in    EmployeeInput
		field string
	}{
		{"missing code", EmployeeInput{FullName: "Anna", Email: "a@example.com"}, "employee_id"},
		{"blank name", EmployeeInput{EmployeeID: "E001", FullName: "   ", Email: "a@example.com"}, "full_name"},
		{"missing email", EmployeeInput{EmployeeID: "E001", FullName: "Anna"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEmployeeDuplicateCode(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	_, err := svc.Create(ctx, EmployeeInput{EmployeeID: "E001", FullName: "Anna", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, EmployeeInput{EmployeeID: "E001", FullName: "Bo", Email: "b@example.com"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "employee_id", verr.Field)
	assert.Contains(t, verr.Message, `"E001" already exists`)
}

func TestEmployeeUpdate(t *testing.T) {
	svc, clock := newEmployeeService()
	ctx := context.Background()
	created, err := svc.Create(ctx, EmployeeInput{EmployeeID: "E001", FullName: "Anna", Email: "a@example.com"})
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Minute)
	name := "Anna Berg"
	updated, err := svc.Update(ctx, created.ID.Hex(), EmployeeChanges{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Anna Berg", updated.FullName)
	assert.Equal(t, "a@example.com", updated.Email)
	assert.Equal(t, clock.now, updated.UpdatedAt)

	blank := " "
	_, err = svc.Update(ctx, created.ID.Hex(), EmployeeChanges{Email: &blank})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), EmployeeChanges{FullName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployeeGetAndDelete(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()
	created, err := svc.Create(ctx, EmployeeInput{EmployeeID: "E001", FullName: "Anna", Email: "a@example.com"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "E001", got.EmployeeID)

	_, err = svc.Get(ctx, "E001")
	assert.ErrorIs(t, err, ErrInvalidID)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID.Hex()), ErrNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
