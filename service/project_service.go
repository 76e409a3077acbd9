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

type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindIDByCode(ctx context.Context, code string) (primitive.ObjectID, error)
	Insert(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, id primitive.ObjectID, u models.ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProjectInput struct {
	ProjectID   string
	ProjectName string
	Description string
}

type ProjectChanges struct {
	ProjectID   *string
	ProjectName *string
	Description *string
}

type ProjectService struct {
	store  ProjectStore
	clock  Clock
	logger *zap.Logger
}

func NewProjectService(store ProjectStore, clock Clock, logger *zap.Logger) *ProjectService {
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{store: store, clock: clock, logger: logger}
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, storeErr("list projects", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	project, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, storeErr("get project", err)
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	project := &models.Project{
		ProjectID:   strings.TrimSpace(in.ProjectID),
		ProjectName: strings.TrimSpace(in.ProjectName),
		Description: in.Description,
	}
	if err := requireFields(
		field{"project_id", project.ProjectID},
		field{"project_name", project.ProjectName},
	); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	project.ID = primitive.NewObjectID()
	project.CreatedAt = now
	project.UpdatedAt = now
	if err := s.store.Insert(ctx, project); err != nil {
		return nil, s.writeErr("create project", project.ProjectID, err)
	}
	s.logger.Info("project created", zap.String("project_id", project.ProjectID), zap.String("id", project.ID.Hex()))
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, c ProjectChanges) (*models.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	u := models.ProjectUpdate{UpdatedAt: s.clock.Now(), Description: c.Description}
	if u.ProjectID, err = trimmedRequired("project_id", c.ProjectID); err != nil {
		return nil, err
	}
	if u.ProjectName, err = trimmedRequired("project_name", c.ProjectName); err != nil {
		return nil, err
	}

	code := ""
	if u.ProjectID != nil {
		code = *u.ProjectID
	}
	project, err := s.store.Update(ctx, oid, u)
	if err != nil {
		return nil, s.writeErr("update project", code, err)
	}
	return project, nil
}

// Delete removes the project. Assignments that reference it are kept.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return storeErr("delete project", err)
	}
	s.logger.Info("project deleted", zap.String("id", id))
	return nil
}

func (s *ProjectService) writeErr(op, code string, err error) error {
	if errors.Is(err, db.ErrDuplicate) {
		return &ValidationError{Field: "project_id", Message: fmt.Sprintf("project_id %q already exists", code)}
	}
	return storeErr(op, err)
}
