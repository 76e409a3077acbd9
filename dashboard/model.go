package dashboard

import (
	"context"
	"time"

	"project-dashboard/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fetcher loads the listing data. *client.Client implements it.
type Fetcher interface {
	Assignments(ctx context.Context) ([]models.AssignmentView, error)
	Employees(ctx context.Context) ([]models.Employee, error)
	Projects(ctx context.Context) ([]models.Project, error)
}

type dataMsg Data

type errMsg struct{ err error }

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	boxStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// Model is the bubbletea program state.
type Model struct {
	fetcher Fetcher
	timeout time.Duration

	state   ViewState
	data    Data
	loading bool
	err     error

	table  table.Model
	height int
}

func NewModel(f Fetcher, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	m := Model{
		fetcher: f,
		timeout: timeout,
		state:   DefaultViewState(),
		loading: true,
		table:   table.New(table.WithFocused(true), table.WithHeight(15)),
	}
	m.refresh()
	return m
}

// State returns the current view state.
func (m Model) State() ViewState { return m.state }

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	f, timeout := m.fetcher, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		assignments, err := f.Assignments(ctx)
		if err != nil {
			return errMsg{err}
		}
		employees, err := f.Employees(ctx)
		if err != nil {
			return errMsg{err}
		}
		projects, err := f.Projects(ctx)
		if err != nil {
			return errMsg{err}
		}
		return dataMsg{Assignments: assignments, Employees: employees, Projects: projects}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataMsg:
		m.data = Data(msg)
		m.loading = false
		m.err = nil
		m.refresh()
		return m, nil
	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1":
			return m.sortBy(KeyEmployee), nil
		case "2":
			return m.sortBy(KeyProject), nil
		case "3":
			return m.sortBy(KeyStartDate), nil
		case "i":
			m.state = m.state.ToggleInfo()
			return m, nil
		case "4", "5", "6", "7", "8":
			if m.state.ShowInfo {
				m.state = toggleInfoSort(m.state, msg.String())
				return m, nil
			}
		case "r":
			m.loading = true
			return m, m.fetch()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// toggleInfoSort maps the info table header numbers onto their sort keys.
func toggleInfoSort(s ViewState, k string) ViewState {
	switch k {
	case "4":
		return s.ToggleEmployeeSort(KeyCode)
	case "5":
		return s.ToggleEmployeeSort(KeyName)
	case "6":
		return s.ToggleEmployeeSort(KeyEmail)
	case "7":
		return s.ToggleProjectSort(KeyCode)
	case "8":
		return s.ToggleProjectSort(KeyName)
	}
	return s
}

func (m Model) sortBy(key SortKey) Model {
	m.state = m.state.ToggleSort(key)
	m.refresh()
	return m
}

func (m *Model) refresh() {
	screen := Render(m.state, m.data)
	m.table.SetRows(nil)
	m.table.SetColumns(screen.Assignments.Columns)
	m.table.SetRows(screen.Assignments.Rows)
	if m.height > 0 {
		h := m.height - 8
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
	}
}

func (m Model) View() string {
	screen := Render(m.state, m.data)

	out := titleStyle.Render(screen.Assignments.Title) + "\n"
	switch {
	case m.err != nil:
		out += errStyle.Render("Error: "+m.err.Error()) + "\n"
	case m.loading:
		out += "Loading...\n"
	}
	out += boxStyle.Render(m.table.View()) + "\n"

	for _, info := range []*Table{screen.Employees, screen.Projects} {
		if info == nil {
			continue
		}
		t := table.New(
			table.WithColumns(info.Columns),
			table.WithRows(info.Rows),
			table.WithHeight(len(info.Rows)+1),
		)
		out += titleStyle.Render(info.Title) + "\n" + boxStyle.Render(t.View()) + "\n"
	}

	out += helpStyle.Render(m.help())
	return out
}

func (m Model) help() string {
	if m.state.ShowInfo {
		return "1/2/3 sort assignments • 4/5/6 sort employees • 7/8 sort projects • i hide info • r reload • q quit"
	}
	return "1/2/3 sort • i info • r reload • q quit"
}
