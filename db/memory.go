package db

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"project-dashboard/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps all three collections in process. It honours the same
// ordering, uniqueness and not-found rules as the Mongo repositories and is
// used for local runs (STORE_DRIVER=memory) and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	employees   map[primitive.ObjectID]models.Employee
	projects    map[primitive.ObjectID]models.Project
	assignments map[primitive.ObjectID]models.Assignment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees:   make(map[primitive.ObjectID]models.Employee),
		projects:    make(map[primitive.ObjectID]models.Project),
		assignments: make(map[primitive.ObjectID]models.Assignment),
	}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Employees() *MemoryEmployees { return &MemoryEmployees{s: s} }

func (s *MemoryStore) Projects() *MemoryProjects { return &MemoryProjects{s: s} }

func (s *MemoryStore) Assignments() *MemoryAssignments { return &MemoryAssignments{s: s} }

type MemoryEmployees struct{ s *MemoryStore }

func (m *MemoryEmployees) List(context.Context) ([]models.Employee, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]models.Employee, 0, len(m.s.employees))
	for _, e := range m.s.employees {
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (m *MemoryEmployees) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	e, ok := m.s.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (m *MemoryEmployees) FindIDByCode(_ context.Context, code string) (primitive.ObjectID, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for id, e := range m.s.employees {
		if e.EmployeeID == code {
			return id, nil
		}
	}
	return primitive.NilObjectID, ErrNotFound
}

func (m *MemoryEmployees) Insert(_ context.Context, e *models.Employee) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if _, ok := m.s.employees[e.ID]; ok || m.employeeCodeTaken(e.EmployeeID, e.ID) {
		return ErrDuplicate
	}
	m.s.employees[e.ID] = *e
	return nil
}

func (m *MemoryEmployees) Update(_ context.Context, id primitive.ObjectID, u models.EmployeeUpdate) (*models.Employee, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	e, ok := m.s.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	if u.EmployeeID != nil {
		if m.employeeCodeTaken(*u.EmployeeID, id) {
			return nil, ErrDuplicate
		}
		e.EmployeeID = *u.EmployeeID
	}
	if u.FullName != nil {
		e.FullName = *u.FullName
	}
	if u.Email != nil {
		e.Email = *u.Email
	}
	e.UpdatedAt = u.UpdatedAt
	m.s.employees[id] = e
	return &e, nil
}

func (m *MemoryEmployees) Delete(_ context.Context, id primitive.ObjectID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.employees[id]; !ok {
		return ErrNotFound
	}
	delete(m.s.employees, id)
	return nil
}

func (m *MemoryEmployees) employeeCodeTaken(code string, self primitive.ObjectID) bool {
	for id, e := range m.s.employees {
		if id != self && e.EmployeeID == code {
			return true
		}
	}
	return false
}

type MemoryProjects struct{ s *MemoryStore }

func (m *MemoryProjects) List(context.Context) ([]models.Project, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]models.Project, 0, len(m.s.projects))
	for _, p := range m.s.projects {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out, nil
}

func (m *MemoryProjects) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	p, ok := m.s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryProjects) FindIDByCode(_ context.Context, code string) (primitive.ObjectID, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for id, p := range m.s.projects {
		if p.ProjectID == code {
			return id, nil
		}
	}
	return primitive.NilObjectID, ErrNotFound
}

func (m *MemoryProjects) Insert(_ context.Context, p *models.Project) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, ok := m.s.projects[p.ID]; ok || m.projectCodeTaken(p.ProjectID, p.ID) {
		return ErrDuplicate
	}
	m.s.projects[p.ID] = *p
	return nil
}

func (m *MemoryProjects) Update(_ context.Context, id primitive.ObjectID, u models.ProjectUpdate) (*models.Project, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	if u.ProjectID != nil {
		if m.projectCodeTaken(*u.ProjectID, id) {
			return nil, ErrDuplicate
		}
		p.ProjectID = *u.ProjectID
	}
	if u.ProjectName != nil {
		p.ProjectName = *u.ProjectName
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	p.UpdatedAt = u.UpdatedAt
	m.s.projects[id] = p
	return &p, nil
}

func (m *MemoryProjects) Delete(_ context.Context, id primitive.ObjectID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.projects[id]; !ok {
		return ErrNotFound
	}
	delete(m.s.projects, id)
	return nil
}

func (m *MemoryProjects) projectCodeTaken(code string, self primitive.ObjectID) bool {
	for id, p := range m.s.projects {
		if id != self && p.ProjectID == code {
			return true
		}
	}
	return false
}

type MemoryAssignments struct{ s *MemoryStore }

func (m *MemoryAssignments) ListJoined(_ context.Context, f models.AssignmentFilter) ([]models.AssignmentView, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := []models.AssignmentView{}
	for _, a := range m.s.assignments {
		if f.EmployeeID != nil && a.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.ProjectID != nil && a.ProjectID != *f.ProjectID {
			continue
		}
		out = append(out, m.join(a))
	}
	sort.SliceStable(out, func(i, j int) bool { return newerFirst(out[i], out[j]) })
	return out, nil
}

func (m *MemoryAssignments) FindJoined(_ context.Context, id primitive.ObjectID) (*models.AssignmentView, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	a, ok := m.s.assignments[id]
	if !ok {
		return nil, ErrNotFound
	}
	view := m.join(a)
	return &view, nil
}

func (m *MemoryAssignments) Insert(_ context.Context, a *models.Assignment) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, ok := m.s.assignments[a.ID]; ok {
		return ErrDuplicate
	}
	m.s.assignments[a.ID] = *a
	return nil
}

func (m *MemoryAssignments) Update(_ context.Context, id primitive.ObjectID, u models.AssignmentUpdate) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.assignments[id]
	if !ok {
		return ErrNotFound
	}
	if u.EmployeeID != nil {
		a.EmployeeID = *u.EmployeeID
	}
	if u.ProjectID != nil {
		a.ProjectID = *u.ProjectID
	}
	if u.SetStartDate {
		a.StartDate = u.StartDate
	}
	a.UpdatedAt = u.UpdatedAt
	m.s.assignments[id] = a
	return nil
}

func (m *MemoryAssignments) Delete(_ context.Context, id primitive.ObjectID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.assignments[id]; !ok {
		return ErrNotFound
	}
	delete(m.s.assignments, id)
	return nil
}

// join must be called with the read lock held.
func (m *MemoryAssignments) join(a models.Assignment) models.AssignmentView {
	view := models.AssignmentView{
		ID:        a.ID,
		StartDate: a.StartDate,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if e, ok := m.s.employees[a.EmployeeID]; ok {
		view.Employee = &models.EmployeeRef{ID: e.ID, EmployeeID: e.EmployeeID, FullName: e.FullName, Email: e.Email}
	}
	if p, ok := m.s.projects[a.ProjectID]; ok {
		view.Project = &models.ProjectRef{ID: p.ID, ProjectID: p.ProjectID, ProjectName: p.ProjectName}
	}
	return view
}

// newerFirst mirrors the Mongo sort {start_date: -1, _id: -1}; a null date
// sorts below every real date.
func newerFirst(a, b models.AssignmentView) bool {
	switch {
	case a.StartDate == nil && b.StartDate != nil:
		return false
	case a.StartDate != nil && b.StartDate == nil:
		return true
	case a.StartDate != nil && b.StartDate != nil && !a.StartDate.Equal(*b.StartDate):
		return a.StartDate.After(*b.StartDate)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}
