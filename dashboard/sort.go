package dashboard

import (
	"cmp"
	"slices"

	"project-dashboard/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator compares text the way a Swedish reader expects, ignoring case
// and width. A Collator is not safe for concurrent use, so each sort gets one.
func newCollator() *collate.Collator {
	return collate.New(language.Swedish, collate.Loose)
}

// sortStable returns a sorted copy of rows. Descending negates compare, so
// rows that compare equal stay in their original order either way.
func sortStable[T any](rows []T, order SortOrder, compare func(a, b T) int) []T {
	out := slices.Clone(rows)
	if order == Desc {
		slices.SortStableFunc(out, func(a, b T) int { return -compare(a, b) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// SortAssignments orders rows by employee name, project name or start date.
// Missing references sort as empty text and missing dates as the epoch.
func SortAssignments(rows []models.AssignmentView, key SortKey, order SortOrder) []models.AssignmentView {
	c := newCollator()
	var compare func(a, b models.AssignmentView) int
	switch key {
	case KeyEmployee:
		compare = func(a, b models.AssignmentView) int {
			return c.CompareString(employeeName(a), employeeName(b))
		}
	case KeyProject:
		compare = func(a, b models.AssignmentView) int {
			return c.CompareString(projectName(a), projectName(b))
		}
	default:
		compare = func(a, b models.AssignmentView) int {
			return cmp.Compare(startMillis(a), startMillis(b))
		}
	}
	return sortStable(rows, order, compare)
}

// SortEmployees orders by name, email or code. Any other key sorts by code.
func SortEmployees(rows []models.Employee, key SortKey, order SortOrder) []models.Employee {
	c := newCollator()
	return sortStable(rows, order, func(a, b models.Employee) int {
		switch key {
		case KeyName:
			return c.CompareString(a.FullName, b.FullName)
		case KeyEmail:
			return c.CompareString(a.Email, b.Email)
		}
		return c.CompareString(a.EmployeeID, b.EmployeeID)
	})
}

// SortProjects orders by name or code. Any other key sorts by code.
func SortProjects(rows []models.Project, key SortKey, order SortOrder) []models.Project {
	c := newCollator()
	return sortStable(rows, order, func(a, b models.Project) int {
		if key == KeyName {
			return c.CompareString(a.ProjectName, b.ProjectName)
		}
		return c.CompareString(a.ProjectID, b.ProjectID)
	})
}

func employeeName(a models.AssignmentView) string {
	if a.Employee == nil {
		return ""
	}
	return a.Employee.FullName
}

func projectName(a models.AssignmentView) string {
	if a.Project == nil {
		return ""
	}
	return a.Project.ProjectName
}

func startMillis(a models.AssignmentView) int64 {
	if a.StartDate == nil {
		return 0
	}
	return a.StartDate.UnixMilli()
}
