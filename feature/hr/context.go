package hr

import (
	"context"

	"mini-orm/core/database"
	"mini-orm/core/orm"
)

// Context is the loaded HR unit of work.
type Context struct {
	*orm.Context

	Departments       *orm.Set[Department]
	Employees         *orm.Set[Employee]
	Projects          *orm.Set[Project]
	EmployeesProjects *orm.Set[EmployeeProject]

	conn *database.Connection
}

// NewContext loads every HR set from store.
func NewContext(ctx context.Context, store orm.Store, opts ...orm.Option) (*Context, error) {
	model := orm.NewModel()
	c := &Context{
		Departments:       orm.Declare(model, "Departments", departmentMapping()),
		Employees:         orm.Declare(model, "Employees", employeeMapping()),
		Projects:          orm.Declare(model, "Projects", projectMapping()),
		EmployeesProjects: orm.Declare(model, "EmployeesProjects", employeeProjectMapping()),
	}

	oc, err := orm.Open(ctx, store, model, opts...)
	if err != nil {
		return nil, err
	}
	c.Context = oc
	return c, nil
}

// Open connects with cfg and loads a Context owning the connection.
func Open(ctx context.Context, cfg database.Config, opts ...orm.Option) (*Context, error) {
	conn, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	c, err := NewContext(ctx, conn, opts...)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	c.conn = conn
	return c, nil
}

// Close releases the connection opened by Open.
func (c *Context) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
