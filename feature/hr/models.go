package hr

import "strings"

// Department groups employees.
type Department struct {
	ID   int32
	Name string

	employees []*Employee
}

// Employees returns the department's employees as resolved at load.
func (d *Department) Employees() []*Employee {
	return d.employees
}

// Employee works in one department and on any number of projects.
type Employee struct {
	ID           int32
	FirstName    string
	MiddleName   *string
	LastName     string
	IsEmployed   bool
	DepartmentID int32

	department       *Department
	employeeProjects []*EmployeeProject
}

// Department returns the employee's department as resolved at load.
func (e *Employee) Department() *Department {
	return e.department
}

// EmployeeProjects returns the employee's project assignments.
func (e *Employee) EmployeeProjects() []*EmployeeProject {
	return e.employeeProjects
}

// FullName joins the first, middle and last names.
func (e *Employee) FullName() string {
	parts := []string{e.FirstName}
	if e.MiddleName != nil && *e.MiddleName != "" {
		parts = append(parts, *e.MiddleName)
	}
	parts = append(parts, e.LastName)
	return strings.Join(parts, " ")
}

// Project is staffed through EmployeeProject assignments.
type Project struct {
	ID   int32
	Name string

	employeeProjects []*EmployeeProject
}

// EmployeeProjects returns the project's assignments.
func (p *Project) EmployeeProjects() []*EmployeeProject {
	return p.employeeProjects
}

// EmployeeProject assigns an employee to a project.
type EmployeeProject struct {
	EmployeeID int32
	ProjectID  int32

	employee *Employee
	project  *Project
}

// Employee returns the assigned employee.
func (ep *EmployeeProject) Employee() *Employee {
	return ep.employee
}

// Project returns the assigned project.
func (ep *EmployeeProject) Project() *Project {
	return ep.project
}
