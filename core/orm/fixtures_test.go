package orm

import (
	"context"
	"testing"

	"mini-orm/core/schema"

	"github.com/stretchr/testify/require"
)

type department struct {
	ID        int32
	Name      string
	employees []*employee
}

type employee struct {
	ID           int32
	FirstName    string
	MiddleName   *string
	LastName     string
	IsEmployed   bool
	DepartmentID int32
	department   *department
	projects     []*employeeProject
}

type project struct {
	ID   int32
	Name string
}

type employeeProject struct {
	EmployeeID int32
	ProjectID  int32
	employee   *employee
	project    *project
}

func departmentMapping() *schema.Mapping[department] {
	return schema.NewMapping(
		schema.Scalar("Id", func(d *department) *int32 { return &d.ID }).PrimaryKey(),
		schema.Scalar("Name", func(d *department) *string { return &d.Name }).Required().Validate("max=50"),
	).Relate(
		schema.HasMany(func(d *department) *[]*employee { return &d.employees }),
	)
}

func employeeMapping() *schema.Mapping[employee] {
	return schema.NewMapping(
		schema.Scalar("Id", func(e *employee) *int32 { return &e.ID }).PrimaryKey(),
		schema.Scalar("FirstName", func(e *employee) *string { return &e.FirstName }).Required(),
		schema.Nullable("MiddleName", func(e *employee) **string { return &e.MiddleName }),
		schema.Scalar("LastName", func(e *employee) *string { return &e.LastName }).Required(),
		schema.Scalar("IsEmployed", func(e *employee) *bool { return &e.IsEmployed }).Required(),
		schema.Scalar("DepartmentId", func(e *employee) *int32 { return &e.DepartmentID }),
	).Relate(
		schema.RefersTo("DepartmentId", func(e *employee) **department { return &e.department }),
		schema.HasMany(func(e *employee) *[]*employeeProject { return &e.projects }),
	)
}

func projectMapping() *schema.Mapping[project] {
	return schema.NewMapping(
		schema.Scalar("Id", func(p *project) *int32 { return &p.ID }).PrimaryKey(),
		schema.Scalar("Name", func(p *project) *string { return &p.Name }).Required(),
	)
}

func employeeProjectMapping() *schema.Mapping[employeeProject] {
	return schema.NewMapping(
		schema.Scalar("EmployeeId", func(l *employeeProject) *int32 { return &l.EmployeeID }).PrimaryKey(),
		schema.Scalar("ProjectId", func(l *employeeProject) *int32 { return &l.ProjectID }).PrimaryKey(),
	).Relate(
		schema.RefersTo("EmployeeId", func(l *employeeProject) **employee { return &l.employee }),
		schema.RefersTo("ProjectId", func(l *employeeProject) **project { return &l.project }),
	).AsJoin()
}

// seededStore holds 2 departments, 3 employees, 2 projects and 3 assignments.
func seededStore() *memStore {
	s := newMemStore()
	s.create("Departments", []string{"Id", "Name"}, "Id")
	s.create("Employees", []string{"Id", "FirstName", "MiddleName", "LastName", "IsEmployed", "DepartmentId"}, "Id")
	s.create("Projects", []string{"Id", "Name"})
	s.create("EmployeesProjects", []string{"EmployeeId", "ProjectId"})

	s.seed("Departments",
		[]any{int64(1), "Engineering"},
		[]any{int64(2), "Sales"},
	)
	s.seed("Employees",
		[]any{int64(1), "Ada", nil, "Lovelace", int64(1), int64(1)},
		[]any{int64(2), "Bob", "J", "Builder", int64(1), int64(1)},
		[]any{int64(3), "Cy", nil, "Young", int64(0), int64(2)},
	)
	s.seed("Projects",
		[]any{int64(1), "Apollo"},
		[]any{int64(2), "Gemini"},
	)
	s.seed("EmployeesProjects",
		[]any{int64(1), int64(1)},
		[]any{int64(1), int64(2)},
		[]any{int64(2), int64(1)},
	)
	return s
}

type hrContext struct {
	*Context
	Departments *Set[department]
	Employees   *Set[employee]
	Projects    *Set[project]
	Links       *Set[employeeProject]
}

func openHR(ctx context.Context, store Store, opts ...Option) (*hrContext, error) {
	model := NewModel()
	hr := &hrContext{
		Departments: Declare(model, "Departments", departmentMapping()),
		Employees:   Declare(model, "Employees", employeeMapping()),
		Projects:    Declare(model, "Projects", projectMapping()),
		Links:       Declare(model, "EmployeesProjects", employeeProjectMapping()),
	}
	c, err := Open(ctx, store, model, opts...)
	if err != nil {
		return nil, err
	}
	hr.Context = c
	return hr, nil
}

func mustOpenHR(t *testing.T, store Store, opts ...Option) *hrContext {
	t.Helper()
	hr, err := openHR(context.Background(), store, opts...)
	require.NoError(t, err)
	return hr
}

func employeeNamed(hr *hrContext, first string) *employee {
	return hr.Employees.Find(func(e *employee) bool { return e.FirstName == first })
}

func ptr[V any](v V) *V {
	return &v
}
