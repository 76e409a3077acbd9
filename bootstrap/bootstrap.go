package bootstrap

import (
	"context"
	"fmt"

	"project-dashboard/service"

	"go.uber.org/zap"
)

var initialEmployees = []service.EmployeeInput{
	{EmployeeID: "E001", FullName: "Anna Andersson", Email: "anna.andersson@example.com"},
	{EmployeeID: "E002", FullName: "Björn Berg", Email: "bjorn.berg@example.com"},
	{EmployeeID: "E003", FullName: "Cecilia Ek", Email: "cecilia.ek@example.com"},
	{EmployeeID: "E004", FullName: "David Öberg", Email: "david.oberg@example.com"},
	{EmployeeID: "E005", FullName: "Elin Åkesson", Email: "elin.akesson@example.com"},
}

var initialProjects = []service.ProjectInput{
	{ProjectID: "P001", ProjectName: "Apollo", Description: "Customer portal rebuild"},
	{ProjectID: "P002", ProjectName: "Zenit", Description: "Data warehouse migration"},
	{ProjectID: "P003", ProjectName: "Älvdalen", Description: "Field service mobile app"},
}

func strp(s string) *string { return &s }

var initialAssignments = []service.AssignmentInput{
	{EmployeeRef: "E001", ProjectRef: "P001", StartDate: strp("2024-01-15")},
	{EmployeeRef: "E002", ProjectRef: "P001", StartDate: strp("2024-02-01")},
	{EmployeeRef: "E003", ProjectRef: "P002", StartDate: strp("2023-11-20")},
	{EmployeeRef: "E004", ProjectRef: "P003", StartDate: strp("2024-04-08")},
	{EmployeeRef: "E005", ProjectRef: "P002", StartDate: strp("2024-03-11")},
	{EmployeeRef: "E001", ProjectRef: "P003", StartDate: strp("2024-05-02")},
}

type Services struct {
	Employees   *service.EmployeeService
	Projects    *service.ProjectService
	Assignments *service.AssignmentService
}

// InsertInitialData seeds demo employees, projects and assignments. It does
// nothing unless enabled or when any employees or projects already exist.
func InsertInitialData(ctx context.Context, logger *zap.Logger, enabled bool, svc Services) error {
	if !enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	employees, err := svc.Employees.List(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: count employees: %w", err)
	}
	projects, err := svc.Projects.List(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: count projects: %w", err)
	}
	if len(employees) > 0 || len(projects) > 0 {
		logger.Info("bootstrap skipped, data present",
			zap.Int("employees", len(employees)), zap.Int("projects", len(projects)))
		return nil
	}

	for _, in := range initialEmployees {
		if _, err := svc.Employees.Create(ctx, in); err != nil {
			return fmt.Errorf("bootstrap: employee %s: %w", in.EmployeeID, err)
		}
	}
	for _, in := range initialProjects {
		if _, err := svc.Projects.Create(ctx, in); err != nil {
			return fmt.Errorf("bootstrap: project %s: %w", in.ProjectID, err)
		}
	}
	for _, in := range initialAssignments {
		if _, err := svc.Assignments.Create(ctx, in); err != nil {
			return fmt.Errorf("bootstrap: assignment %s/%s: %w", in.EmployeeRef, in.ProjectRef, err)
		}
	}

	logger.Info("initial data inserted",
		zap.Int("employees", len(initialEmployees)),
		zap.Int("projects", len(initialProjects)),
		zap.Int("assignments", len(initialAssignments)))
	return nil
}
