package dashboard

import (
	"fmt"
	"strings"

	"project-dashboard/models"

	"github.com/charmbracelet/bubbles/table"
)

const (
	dateLayout = "2006-01-02"
	missing    = "N/A"
)

// Data is one fetch of the API.
type Data struct {
	Assignments []models.AssignmentView
	Employees   []models.Employee
	Projects    []models.Project
}

// Table is a titled grid ready to hand to a bubbles table.
type Table struct {
	Title   string
	Columns []table.Column
	Rows    []table.Row
}

// Screen is everything Render produces. Employees and Projects are nil while
// the info tables are hidden.
type Screen struct {
	Assignments Table
	Employees   *Table
	Projects    *Table
}

// Render turns state and data into tables. It does not modify data.
func Render(state ViewState, data Data) Screen {
	rows := SortAssignments(data.Assignments, state.SortKey, state.SortOrder)

	screen := Screen{Assignments: Table{
		Title: fmt.Sprintf("Project Assignments (%d)", len(rows)),
		Columns: []table.Column{
			{Title: header("1 Employee", state.Arrow(KeyEmployee)), Width: 28},
			{Title: header("2 Project", state.Arrow(KeyProject)), Width: 28},
			{Title: header("3 Start Date", state.Arrow(KeyStartDate)), Width: 16},
		},
		Rows: make([]table.Row, 0, len(rows)),
	}}
	for _, a := range rows {
		screen.Assignments.Rows = append(screen.Assignments.Rows, table.Row{
			orMissing(employeeName(a)),
			orMissing(projectName(a)),
			formatDate(a),
		})
	}

	if !state.ShowInfo {
		return screen
	}

	es := state.EmployeeSort
	employees := SortEmployees(data.Employees, es.Key, es.Order)
	et := &Table{
		Title: fmt.Sprintf("Employees (%d)", len(employees)),
		Columns: []table.Column{
			{Title: header("4 Code", es.Arrow(KeyCode)), Width: 10},
			{Title: header("5 Name", es.Arrow(KeyName)), Width: 28},
			{Title: header("6 Email", es.Arrow(KeyEmail)), Width: 32},
		},
	}
	for _, e := range employees {
		et.Rows = append(et.Rows, table.Row{e.EmployeeID, orMissing(e.FullName), orMissing(e.Email)})
	}

	ps := state.ProjectSort
	projects := SortProjects(data.Projects, ps.Key, ps.Order)
	pt := &Table{
		Title: fmt.Sprintf("Projects (%d)", len(projects)),
		Columns: []table.Column{
			{Title: header("7 Code", ps.Arrow(KeyCode)), Width: 10},
			{Title: header("8 Name", ps.Arrow(KeyName)), Width: 28},
			{Title: "Description", Width: 40},
		},
	}
	for _, p := range projects {
		pt.Rows = append(pt.Rows, table.Row{p.ProjectID, orMissing(p.ProjectName), orMissing(p.Description)})
	}

	screen.Employees = et
	screen.Projects = pt
	return screen
}

func header(title, arrow string) string {
	return strings.TrimSpace(title + " " + arrow)
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}

func formatDate(a models.AssignmentView) string {
	if a.StartDate == nil || a.StartDate.IsZero() {
		return missing
	}
	return a.StartDate.UTC().Format(dateLayout)
}
