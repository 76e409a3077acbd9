package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"project-dashboard/db"
	"project-dashboard/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type EmployeeStore interface {
	List(ctx context.Context) ([]models.Employee, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	FindIDByCode(ctx context.Context, code string) (primitive.ObjectID, error)
	Insert(ctx context.Context, e *models.Employee) error
	Update(ctx context.Context, id primitive.ObjectID, u models.EmployeeUpdate) (*models.Employee, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type EmployeeInput struct {
	EmployeeID string
	FullName   string
	Email      string
}

// EmployeeChanges is a partial employee update; nil fields are kept.
type EmployeeChanges struct {
	EmployeeID *string
	FullName   *string
	Email      *string
}

type EmployeeService struct {
	store  EmployeeStore
	clock  Clock
	logger *zap.Logger
}

func NewEmployeeService(store EmployeeStore, clock Clock, logger *zap.Logger) *EmployeeService {
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{store: store, clock: clock, logger: logger}
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.store.List(ctx)
	if err != nil {
		return nil, storeErr("list employees", err)
	}
	return employees, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	employee, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, storeErr("get employee", err)
	}
	return employee, nil
}

func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	employee := &models.Employee{
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		FullName:   strings.TrimSpace(in.FullName),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
	}
	if err := requireFields(
		field{"employee_id", employee.EmployeeID},
		field{"full_name", employee.FullName},
		field{"email", employee.Email},
	); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	if err := s.store.Insert(ctx, employee); err != nil {
		return nil, s.writeErr("create employee", employee.EmployeeID, err)
	}
	s.logger.Info("employee created", zap.String("employee_id", employee.EmployeeID), zap.String("id", employee.ID.Hex()))
	return employee, nil
}

// Update applies the given changes. Required fields may be changed but not
// blanked.
func (s *EmployeeService) Update(ctx context.Context, id string, c EmployeeChanges) (*models.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	u := models.EmployeeUpdate{UpdatedAt: s.clock.Now()}
	if u.EmployeeID, err = trimmedRequired("employee_id", c.EmployeeID); err != nil {
		return nil, err
	}
	if u.FullName, err = trimmedRequired("full_name", c.FullName); err != nil {
		return nil, err
	}
	if u.Email, err = trimmedRequired("email", c.Email); err != nil {
		return nil, err
	}
	if u.Email != nil {
		lower := strings.ToLower(*u.Email)
		u.Email = &lower
	}

	code := ""
	if u.EmployeeID != nil {
		code = *u.EmployeeID
	}
	employee, err := s.store.Update(ctx, oid, u)
	if err != nil {
		return nil, s.writeErr("update employee", code, err)
	}
	return employee, nil
}

// Delete removes the employee. Assignments that reference it are kept.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return storeErr("delete employee", err)
	}
	s.logger.Info("employee deleted", zap.String("id", id))
	return nil
}

func (s *EmployeeService) writeErr(op, code string, err error) error {
	if errors.Is(err, db.ErrDuplicate) {
		return &ValidationError{Field: "employee_id", Message: fmt.Sprintf("employee_id %q already exists", code)}
	}
	return storeErr(op, err)
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{Field: f.name, Message: f.name + " is required"}
		}
	}
	return nil
}

func trimmedRequired(name string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil, &ValidationError{Field: name, Message: name + " must not be empty"}
	}
	return &trimmed, nil
}
