// Package dashboard renders the assignment listing in the terminal. All view
// state lives in ViewState and is applied by pure functions; the bubbletea
// model only owns the fetched data.
package dashboard

type SortKey string

const (
	KeyEmployee  SortKey = "employee"
	KeyProject   SortKey = "project"
	KeyStartDate SortKey = "start_date"

	// Keys of the employee and project info tables.
	KeyCode  SortKey = "code"
	KeyName  SortKey = "name"
	KeyEmail SortKey = "email"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// TableSort is the sort of one info table.
type TableSort struct {
	Key   SortKey   `json:"key"`
	Order SortOrder `json:"order"`
}

// ViewState is everything the user can change about the listing.
type ViewState struct {
	SortKey      SortKey   `json:"sort_key"`
	SortOrder    SortOrder `json:"sort_order"`
	ShowInfo     bool      `json:"show_info"`
	EmployeeSort TableSort `json:"employee_sort"`
	ProjectSort  TableSort `json:"project_sort"`
}

// DefaultViewState shows the newest assignments first with the info tables
// hidden. The info tables start sorted by name.
func DefaultViewState() ViewState {
	return ViewState{
		SortKey:      KeyStartDate,
		SortOrder:    Desc,
		EmployeeSort: TableSort{Key: KeyName, Order: Asc},
		ProjectSort:  TableSort{Key: KeyName, Order: Asc},
	}
}

// ToggleSort flips the order when key is already active, otherwise switches to
// key in ascending order.
func (s ViewState) ToggleSort(key SortKey) ViewState {
	s.SortKey, s.SortOrder = toggle(s.SortKey, s.SortOrder, key)
	return s
}

// ToggleEmployeeSort applies the ToggleSort rules to the employee table.
func (s ViewState) ToggleEmployeeSort(key SortKey) ViewState {
	s.EmployeeSort.Key, s.EmployeeSort.Order = toggle(s.EmployeeSort.Key, s.EmployeeSort.Order, key)
	return s
}

func (s ViewState) ToggleProjectSort(key SortKey) ViewState {
	s.ProjectSort.Key, s.ProjectSort.Order = toggle(s.ProjectSort.Key, s.ProjectSort.Order, key)
	return s
}

func (s ViewState) ToggleInfo() ViewState {
	s.ShowInfo = !s.ShowInfo
	return s
}

// Arrow is the assignment table header indicator for key.
func (s ViewState) Arrow(key SortKey) string {
	return arrow(s.SortKey, s.SortOrder, key)
}

// Arrow is the header indicator for key in an info table.
func (t TableSort) Arrow(key SortKey) string {
	return arrow(t.Key, t.Order, key)
}

func toggle(active SortKey, order SortOrder, key SortKey) (SortKey, SortOrder) {
	if active != key {
		return key, Asc
	}
	if order == Asc {
		return key, Desc
	}
	return key, Asc
}

// arrow marks only the active column, pointing down for ascending.
func arrow(active SortKey, order SortOrder, key SortKey) string {
	if active != key {
		return ""
	}
	if order == Asc {
		return "▼"
	}
	return "▲"
}
