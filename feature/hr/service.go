package hr

import (
	"context"
	"errors"

	"mini-orm/core/metrics"
	"mini-orm/core/orm"

	"go.uber.org/zap"
)

// ErrNoDepartments is returned by RunDemo when there is no department to
// attach the new employee to.
var ErrNoDepartments = errors.New("no departments to attach the new employee to")

// Summary counts the loaded HR data.
type Summary struct {
	Departments int `json:"departments" yaml:"departments"`
	Employees   int `json:"employees" yaml:"employees"`
	Employed    int `json:"employed" yaml:"employed"`
	Projects    int `json:"projects" yaml:"projects"`
	Assignments int `json:"assignments" yaml:"assignments"`
}

// DepartmentView is a department with its resolved staff.
type DepartmentView struct {
	ID        int32          `json:"id"`
	Name      string         `json:"name"`
	Employees []EmployeeView `json:"employees"`
}

// EmployeeView is an employee with the names of their projects.
type EmployeeView struct {
	ID         int32    `json:"id"`
	Name       string   `json:"name"`
	IsEmployed bool     `json:"is_employed"`
	Projects   []string `json:"projects"`
}

// DemoOptions controls RunDemo.
type DemoOptions struct {
	DryRun bool
	// Confirm is asked before saving; nil means yes.
	Confirm func(planned []orm.ChangeSummary) bool
}

// DemoReport describes what RunDemo planned and whether it was saved.
type DemoReport struct {
	Planned []orm.ChangeSummary `json:"planned" yaml:"planned"`
	Applied bool                `json:"applied" yaml:"applied"`
	State   string              `json:"state" yaml:"state"`
}

// Service opens a fresh HR context per operation.
type Service struct {
	store   orm.Store
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewService creates a new HR service.
func NewService(store orm.Store, logger *zap.Logger, m *metrics.Collector) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, metrics: m}
}

func (s *Service) open(ctx context.Context, log *zap.Logger) (*Context, error) {
	return NewContext(ctx, s.store, orm.WithLogger(log), orm.WithMetrics(s.metrics))
}

// Summary loads the HR data and counts it.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	c, err := s.open(ctx, s.logger)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Departments: c.Departments.Len(),
		Employees:   c.Employees.Len(),
		Projects:    c.Projects.Len(),
		Assignments: c.EmployeesProjects.Len(),
	}
	for e := range c.Employees.All() {
		if e.IsEmployed {
			sum.Employed++
		}
	}
	return sum, nil
}

// Departments loads the HR data and returns every department with its staff.
func (s *Service) Departments(ctx context.Context) ([]DepartmentView, error) {
	c, err := s.open(ctx, s.logger)
	if err != nil {
		return nil, err
	}

	views := make([]DepartmentView, 0, c.Departments.Len())
	for d := range c.Departments.All() {
		view := DepartmentView{ID: d.ID, Name: d.Name, Employees: []EmployeeView{}}
		for _, e := range d.Employees() {
			ev := EmployeeView{ID: e.ID, Name: e.FullName(), IsEmployed: e.IsEmployed, Projects: []string{}}
			for _, ep := range e.EmployeeProjects() {
				if p := ep.Project(); p != nil {
					ev.Projects = append(ev.Projects, p.Name)
				}
			}
			view.Employees = append(view.Employees, ev)
		}
		views = append(views, view)
	}
	return views, nil
}

// RunDemo runs the sample save cycle: it hires an employee into the first
// department, renames the last loaded employee, opens a new department and
// drops the first project assignment.
func (s *Service) RunDemo(ctx context.Context, opts DemoOptions) (*DemoReport, error) {
	c, err := s.open(ctx, s.logger)
	if err != nil {
		return nil, err
	}

	first := c.Departments.First()
	if first == nil {
		return nil, ErrNoDepartments
	}
	last := c.Employees.Last()

	if err := c.Employees.Add(&Employee{
		FirstName:    "Gosho",
		LastName:     "Inserted",
		DepartmentID: first.ID,
		IsEmployed:   true,
	}); err != nil {
		return nil, err
	}
	if last != nil {
		last.FirstName = "Modified"
	}
	if err := c.Departments.Add(&Department{Name: "Personal Relations"}); err != nil {
		return nil, err
	}
	if link := c.EmployeesProjects.First(); link != nil {
		if _, err := c.EmployeesProjects.Remove(link); err != nil {
			return nil, err
		}
	}

	planned, err := c.Changes()
	if err != nil {
		return nil, err
	}
	report := &DemoReport{Planned: planned, State: c.State().String()}

	if opts.DryRun {
		s.logger.Info("Dry run, nothing saved", zap.Int("tables", len(planned)))
		return report, nil
	}
	if opts.Confirm != nil && !opts.Confirm(planned) {
		s.logger.Info("Demo cancelled")
		return report, nil
	}

	err = c.SaveChanges(ctx)
	report.State = c.State().String()
	if err != nil {
		return report, err
	}
	report.Applied = true
	return report, nil
}
