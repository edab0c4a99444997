// Package pages contains headless controllers for the two views of the
// planner: the employee list and the itinerary list. They own the list
// state, the form, and the loading/error flags a front-end renders.
//
// Every operation either applies its result or records a visible error.
// Results that arrive after Close are dropped.
package pages

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flightplanner/client/internal/domain"
	"github.com/flightplanner/client/internal/form"
	"github.com/flightplanner/client/internal/forms"
)

// EmployeeAPI is the subset of the API client the employee page uses.
type EmployeeAPI interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, in domain.NewEmployee) (domain.Employee, error)
}

// placeholderPrefix marks an optimistic record not yet confirmed by the server.
const placeholderPrefix = "tmp-"

// EmployeesView is a point-in-time copy of the employee page state.
type EmployeesView struct {
	Configured  bool
	Loading     bool
	Error       string
	Creating    bool
	CreateError string
	Employees   []domain.Employee
}

// EmployeesPage controls the employee list and the "add employee" form.
type EmployeesPage struct {
	api        EmployeeAPI
	configured bool
	log        *slog.Logger
	now        func() time.Time

	// Form is the add-employee form. Edit it with form.Set.
	Form *form.Form[domain.NewEmployee]

	mu        sync.Mutex
	closed    bool
	loading   bool
	err       string
	creating  bool
	createErr string
	employees []domain.Employee
}

// NewEmployeesPage returns a page backed by api. When configured is false
// the page never issues requests.
func NewEmployeesPage(api EmployeeAPI, configured bool, log *slog.Logger) *EmployeesPage {
	if log == nil {
		log = slog.Default()
	}
	return &EmployeesPage{
		api:        api,
		configured: configured,
		log:        log,
		now:        time.Now,
		Form:       forms.NewEmployeeForm(),
	}
}

// Close marks the page as gone. In-flight requests are not aborted but their
// results are discarded.
func (p *EmployeesPage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Load fetches the employee list and replaces the current one.
// Without configuration it clears the list and returns domain.ErrNotConfigured.
func (p *EmployeesPage) Load(ctx context.Context) error {
	p.mu.Lock()
	if !p.configured {
		p.employees = nil
		p.mu.Unlock()
		return domain.ErrNotConfigured
	}
	if p.loading {
		p.mu.Unlock()
		return domain.ErrBusy
	}
	p.loading = true
	p.err = ""
	p.mu.Unlock()

	list, err := p.api.ListEmployees(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.loading = false
	if err != nil {
		p.err = err.Error()
		p.log.WarnContext(ctx, "load employees failed", "error", err)
		return err
	}
	p.employees = list
	return nil
}

// Create submits the form. A placeholder record is shown at the top of the
// list right away; it is replaced by the server's record on success or
// removed on failure.
func (p *EmployeesPage) Create(ctx context.Context) error {
	p.mu.Lock()
	switch {
	case !p.configured:
		p.mu.Unlock()
		return domain.ErrNotConfigured
	case p.creating:
		p.mu.Unlock()
		return domain.ErrBusy
	case !forms.EmployeeReady(p.Form):
		p.mu.Unlock()
		return fmt.Errorf("%w: employee form is incomplete", domain.ErrValidation)
	}

	values := p.Form.Values()
	trimmed := forms.TrimEmployee(values)
	created := p.now().UTC()
	optimistic := domain.Employee{
		ID:         placeholderPrefix + uuid.NewString(),
		FirstName:  trimmed.FirstName,
		LastName:   trimmed.LastName,
		Email:      trimmed.Email,
		Department: trimmed.Department,
		Title:      trimmed.Title,
		Active:     true,
		CreatedAt:  &created,
	}
	p.creating = true
	p.createErr = ""
	p.employees = append([]domain.Employee{optimistic}, p.employees...)
	p.mu.Unlock()

	saved, err := p.api.CreateEmployee(ctx, values)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.creating = false
	if err != nil {
		p.createErr = err.Error()
		p.employees = slices.DeleteFunc(p.employees, func(e domain.Employee) bool { return e.ID == optimistic.ID })
		p.log.WarnContext(ctx, "create employee failed", "error", err)
		return err
	}
	for i := range p.employees {
		if p.employees[i].ID == optimistic.ID {
			p.employees[i] = saved
		}
	}
	p.Form.Reset()
	return nil
}

// CanCreate reports whether the add button should be enabled.
func (p *EmployeesPage) CanCreate() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.configured && !p.creating && forms.EmployeeReady(p.Form)
}

// Reset clears the add-employee form.
func (p *EmployeesPage) Reset() {
	p.Form.Reset()
}

// Filter returns the employees whose first name, last name, or department
// contains q, case-insensitively. An empty q returns everyone.
func (p *EmployeesPage) Filter(q string) []domain.Employee {
	p.mu.Lock()
	defer p.mu.Unlock()
	if q == "" {
		return slices.Clone(p.employees)
	}
	q = strings.ToLower(q)
	var out []domain.Employee
	for _, e := range p.employees {
		if strings.Contains(strings.ToLower(e.FirstName), q) ||
			strings.Contains(strings.ToLower(e.LastName), q) ||
			strings.Contains(strings.ToLower(e.Department), q) {
			out = append(out, e)
		}
	}
	return out
}

// Snapshot returns a copy of the page state.
func (p *EmployeesPage) Snapshot() EmployeesView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return EmployeesView{
		Configured:  p.configured,
		Loading:     p.loading,
		Error:       p.err,
		Creating:    p.creating,
		CreateError: p.createErr,
		Employees:   slices.Clone(p.employees),
	}
}

// IsPlaceholder reports whether e is an optimistic record awaiting the server.
func IsPlaceholder(e domain.Employee) bool {
	return strings.HasPrefix(e.ID, placeholderPrefix)
}
