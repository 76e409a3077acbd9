package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"project-dashboard/models"
	"project-dashboard/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, in service.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id string, c service.ProjectChanges) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectHandler struct {
	logger *zap.Logger
	svc    ProjectService
}

func NewProjectHandler(l *zap.Logger, svc ProjectService) *ProjectHandler {
	return &ProjectHandler{logger: l, svc: svc}
}

type projectRequest struct {
	ProjectID   *string `json:"project_id"`
	ProjectName *string `json:"project_name"`
	Description *string `json:"project_description"`
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		notFound(w, h.logger, err, "Project")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, project)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w, h.logger)
		return
	}
	project, err := h.svc.Create(r.Context(), service.ProjectInput{
		ProjectID:   deref(req.ProjectID),
		ProjectName: deref(req.ProjectName),
		Description: deref(req.Description),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w, h.logger)
		return
	}
	project, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], service.ProjectChanges{
		ProjectID:   req.ProjectID,
		ProjectName: req.ProjectName,
		Description: req.Description,
	})
	if err != nil {
		notFound(w, h.logger, err, "Project")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		notFound(w, h.logger, err, "Project")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, messageBody{Message: "Project deleted successfully"})
}
