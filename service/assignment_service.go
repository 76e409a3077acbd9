package service

import (
	"context"
	"errors"
	"time"

	"project-dashboard/events"
	"project-dashboard/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	employeeRefMessage = `Employee not found (use ObjectId or employee_id like "E001")`
	projectRefMessage  = `Project not found (use ObjectId or project_id like "P001")`
)

type AssignmentStore interface {
	ListJoined(ctx context.Context, f models.AssignmentFilter) ([]models.AssignmentView, error)
	FindJoined(ctx context.Context, id primitive.ObjectID) (*models.AssignmentView, error)
	Insert(ctx context.Context, a *models.Assignment) error
	Update(ctx context.Context, id primitive.ObjectID, u models.AssignmentUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AssignmentInput is a create or full-replace request. StartDate is nil when
// the field was omitted.
type AssignmentInput struct {
	EmployeeRef string
	ProjectRef  string
	StartDate   *string
}

// AssignmentPatch is a partial update; nil fields were absent from the request.
type AssignmentPatch struct {
	EmployeeRef *string
	ProjectRef  *string
	StartDate   *string
}

type AssignmentService struct {
	store    AssignmentStore
	resolver *Resolver
	events   events.Publisher
	clock    Clock
	logger   *zap.Logger
}

func NewAssignmentService(store AssignmentStore, resolver *Resolver, publisher events.Publisher, clock Clock, logger *zap.Logger) *AssignmentService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{store: store, resolver: resolver, events: publisher, clock: clock, logger: logger}
}

// List returns every assignment, newest start date first.
func (s *AssignmentService) List(ctx context.Context) ([]models.AssignmentView, error) {
	views, err := s.store.ListJoined(ctx, models.AssignmentFilter{})
	if err != nil {
		return nil, storeErr("list assignments", err)
	}
	return views, nil
}

func (s *AssignmentService) Get(ctx context.Context, id string) (*models.AssignmentView, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	view, err := s.store.FindJoined(ctx, oid)
	if err != nil {
		return nil, storeErr("get assignment", err)
	}
	return view, nil
}

// ListByEmployee returns the assignments of the employee ref names. An
// unknown employee has no assignments, so it yields an empty list.
func (s *AssignmentService) ListByEmployee(ctx context.Context, ref string) ([]models.AssignmentView, error) {
	return s.listByRef(ctx, KindEmployee, ref)
}

// ListByProject is ListByEmployee for projects.
func (s *AssignmentService) ListByProject(ctx context.Context, ref string) ([]models.AssignmentView, error) {
	return s.listByRef(ctx, KindProject, ref)
}

func (s *AssignmentService) listByRef(ctx context.Context, kind Kind, ref string) ([]models.AssignmentView, error) {
	id, err := s.resolver.Resolve(ctx, kind, ref)
	if errors.Is(err, ErrRefNotFound) {
		return []models.AssignmentView{}, nil
	}
	if err != nil {
		return nil, err
	}

	var f models.AssignmentFilter
	if kind == KindEmployee {
		f.EmployeeID = &id
	} else {
		f.ProjectID = &id
	}
	views, err := s.store.ListJoined(ctx, f)
	if err != nil {
		return nil, storeErr("list assignments by "+kind.String(), err)
	}
	return views, nil
}

// Create resolves both references and stores a new assignment. Nothing is
// written when either reference fails to resolve.
func (s *AssignmentService) Create(ctx context.Context, in AssignmentInput) (*models.AssignmentView, error) {
	empID, projID, err := s.resolveBoth(ctx, in.EmployeeRef, in.ProjectRef)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	a := &models.Assignment{
		ID:         primitive.NewObjectID(),
		EmployeeID: empID,
		ProjectID:  projID,
		StartDate:  s.defaultedStartDate(in.StartDate, now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Insert(ctx, a); err != nil {
		return nil, storeErr("create assignment", err)
	}

	view, err := s.readBack(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.AssignmentCreated, view)
	return view, nil
}

// Replace overwrites employee, project and start date of an existing
// assignment. An omitted start date is reset to now, as on create.
func (s *AssignmentService) Replace(ctx context.Context, id string, in AssignmentInput) (*models.AssignmentView, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	empID, projID, err := s.resolveBoth(ctx, in.EmployeeRef, in.ProjectRef)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	u := models.AssignmentUpdate{
		EmployeeID:   &empID,
		ProjectID:    &projID,
		SetStartDate: true,
		StartDate:    s.defaultedStartDate(in.StartDate, now),
		UpdatedAt:    now,
	}
	return s.update(ctx, oid, u)
}

// Patch applies only the fields present in p.
func (s *AssignmentService) Patch(ctx context.Context, id string, p AssignmentPatch) (*models.AssignmentView, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	u := models.AssignmentUpdate{UpdatedAt: s.clock.Now()}
	if p.EmployeeRef != nil {
		empID, err := s.resolveRef(ctx, KindEmployee, *p.EmployeeRef)
		if err != nil {
			return nil, err
		}
		u.EmployeeID = &empID
	}
	if p.ProjectRef != nil {
		projID, err := s.resolveRef(ctx, KindProject, *p.ProjectRef)
		if err != nil {
			return nil, err
		}
		u.ProjectID = &projID
	}
	if p.StartDate != nil {
		u.SetStartDate = true
		u.StartDate = s.parsedStartDate(*p.StartDate)
	}
	return s.update(ctx, oid, u)
}

func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return storeErr("delete assignment", err)
	}
	s.publish(ctx, events.AssignmentDeleted, &models.AssignmentView{ID: oid})
	return nil
}

func (s *AssignmentService) update(ctx context.Context, oid primitive.ObjectID, u models.AssignmentUpdate) (*models.AssignmentView, error) {
	if err := s.store.Update(ctx, oid, u); err != nil {
		return nil, storeErr("update assignment", err)
	}
	view, err := s.readBack(ctx, oid)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.AssignmentUpdated, view)
	return view, nil
}

func (s *AssignmentService) readBack(ctx context.Context, oid primitive.ObjectID) (*models.AssignmentView, error) {
	view, err := s.store.FindJoined(ctx, oid)
	if err != nil {
		return nil, storeErr("read assignment", err)
	}
	return view, nil
}

func (s *AssignmentService) resolveBoth(ctx context.Context, employeeRef, projectRef string) (primitive.ObjectID, primitive.ObjectID, error) {
	empID, err := s.resolveRef(ctx, KindEmployee, employeeRef)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	projID, err := s.resolveRef(ctx, KindProject, projectRef)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return empID, projID, nil
}

// resolveRef is the strict form used by writes: an unresolved reference
// becomes a ValidationError naming the field.
func (s *AssignmentService) resolveRef(ctx context.Context, kind Kind, value string) (primitive.ObjectID, error) {
	id, err := s.resolver.Resolve(ctx, kind, value)
	if errors.Is(err, ErrRefNotFound) {
		if kind == KindProject {
			return id, &ValidationError{Field: "project_id", Message: projectRefMessage}
		}
		return id, &ValidationError{Field: "employee_id", Message: employeeRefMessage}
	}
	return id, err
}

func (s *AssignmentService) defaultedStartDate(raw *string, now time.Time) *time.Time {
	if raw == nil || *raw == "" {
		return &now
	}
	return s.parsedStartDate(*raw)
}

// parsedStartDate stores an unparsable date as null rather than rejecting
// the write.
func (s *AssignmentService) parsedStartDate(raw string) *time.Time {
	t, ok := ParseStartDate(raw)
	if !ok {
		s.logger.Warn("unparsable start_date stored as null", zap.String("start_date", raw))
		return nil
	}
	return &t
}

func (s *AssignmentService) publish(ctx context.Context, subject string, view *models.AssignmentView) {
	evt := events.AssignmentEvent{
		Subject:      subject,
		AssignmentID: view.ID.Hex(),
		OccurredAt:   s.clock.Now(),
	}
	if view.Employee != nil {
		evt.EmployeeID = view.Employee.ID.Hex()
	}
	if view.Project != nil {
		evt.ProjectID = view.Project.ID.Hex()
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish assignment event", zap.String("subject", subject), zap.Error(err))
	}
}
