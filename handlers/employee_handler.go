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

type EmployeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id string) (*models.Employee, error)
	Create(ctx context.Context, in service.EmployeeInput) (*models.Employee, error)
	Update(ctx context.Context, id string, c service.EmployeeChanges) (*models.Employee, error)
	Delete(ctx context.Context, id string) error
}

type EmployeeHandler struct {
	logger *zap.Logger
	svc    EmployeeService
}

func NewEmployeeHandler(l *zap.Logger, svc EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{logger: l, svc: svc}
}

type employeeRequest struct {
	EmployeeID *string `json:"employee_id"`
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		notFound(w, h.logger, err, "Employee")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w, h.logger)
		return
	}
	employee, err := h.svc.Create(r.Context(), service.EmployeeInput{
		EmployeeID: deref(req.EmployeeID),
		FullName:   deref(req.FullName),
		Email:      deref(req.Email),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w, h.logger)
		return
	}
	employee, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], service.EmployeeChanges{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
	})
	if err != nil {
		notFound(w, h.logger, err, "Employee")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		notFound(w, h.logger, err, "Employee")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, messageBody{Message: "Employee deleted successfully"})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
