package handlers

import (
	"context"
	"net/http"

	"project-dashboard/models"
	"project-dashboard/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type AssignmentService interface {
	List(ctx context.Context) ([]models.AssignmentView, error)
	Get(ctx context.Context, id string) (*models.AssignmentView, error)
	ListByEmployee(ctx context.Context, ref string) ([]models.AssignmentView, error)
	ListByProject(ctx context.Context, ref string) ([]models.AssignmentView, error)
	Create(ctx context.Context, in service.AssignmentInput) (*models.AssignmentView, error)
	Replace(ctx context.Context, id string, in service.AssignmentInput) (*models.AssignmentView, error)
	Patch(ctx context.Context, id string, p service.AssignmentPatch) (*models.AssignmentView, error)
	Delete(ctx context.Context, id string) error
}

type AssignmentHandler struct {
	logger *zap.Logger
	svc    AssignmentService
}

func NewAssignmentHandler(l *zap.Logger, svc AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{logger: l, svc: svc}
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, views)
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		notFound(w, h.logger, err, "Assignment")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

func (h *AssignmentHandler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListByEmployee(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, views)
}

func (h *AssignmentHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListByProject(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, views)
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(r.Body)
	if err != nil {
		writeBadJSON(w, h.logger)
		return
	}
	view, err := h.svc.Create(r.Context(), assignmentInput(f))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, view)
}

func (h *AssignmentHandler) Replace(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(r.Body)
	if err != nil {
		writeBadJSON(w, h.logger)
		return
	}
	view, err := h.svc.Replace(r.Context(), mux.Vars(r)["id"], assignmentInput(f))
	if err != nil {
		notFound(w, h.logger, err, "Assignment")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

func (h *AssignmentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(r.Body)
	if err != nil {
		writeBadJSON(w, h.logger)
		return
	}
	p := service.AssignmentPatch{
		EmployeeRef: f.ptr("employee_id"),
		ProjectRef:  f.ptr("project_id"),
		StartDate:   f.date("start_date"),
	}
	view, err := h.svc.Patch(r.Context(), mux.Vars(r)["id"], p)
	if err != nil {
		notFound(w, h.logger, err, "Assignment")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		notFound(w, h.logger, err, "Assignment")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, messageBody{Message: "Assignment deleted successfully"})
}

// assignmentInput reads a create or replace body. A null start_date counts as
// omitted.
func assignmentInput(f fields) service.AssignmentInput {
	return service.AssignmentInput{
		EmployeeRef: f.str("employee_id"),
		ProjectRef:  f.str("project_id"),
		StartDate:   f.date("start_date"),
	}
}
