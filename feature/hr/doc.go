// Package hr is the sample application built on the orm engine: departments,
// employees, projects and the EmployeesProjects join table.
//
// Navigations (Employee.Department, Department.Employees and so on) are
// resolved once when a Context opens. They are not refreshed after later
// mutations or a save.
//
// The Service opens a fresh Context per call, so HTTP handlers never share
// tracked state. RunDemo performs the canonical cycle: hire, rename, open a
// department and drop one assignment, all in one transaction.
package hr
