package hr

import "mini-orm/core/schema"

func departmentMapping() *schema.Mapping[Department] {
	return schema.NewMapping(
		schema.Scalar("Id", func(d *Department) *int32 { return &d.ID }).PrimaryKey(),
		schema.Scalar("Name", func(d *Department) *string { return &d.Name }).Required().Validate("max=50"),
	).Relate(
		schema.HasMany(func(d *Department) *[]*Employee { return &d.employees }),
	)
}

func employeeMapping() *schema.Mapping[Employee] {
	return schema.NewMapping(
		schema.Scalar("Id", func(e *Employee) *int32 { return &e.ID }).PrimaryKey(),
		schema.Scalar("FirstName", func(e *Employee) *string { return &e.FirstName }).Required().Validate("max=50"),
		schema.Nullable("MiddleName", func(e *Employee) **string { return &e.MiddleName }).Validate("max=50"),
		schema.Scalar("LastName", func(e *Employee) *string { return &e.LastName }).Required().Validate("max=50"),
		schema.Scalar("IsEmployed", func(e *Employee) *bool { return &e.IsEmployed }).Required(),
		schema.Scalar("DepartmentId", func(e *Employee) *int32 { return &e.DepartmentID }),
	).Relate(
		schema.RefersTo("DepartmentId", func(e *Employee) **Department { return &e.department }),
		schema.HasMany(func(e *Employee) *[]*EmployeeProject { return &e.employeeProjects }),
	)
}

func projectMapping() *schema.Mapping[Project] {
	return schema.NewMapping(
		schema.Scalar("Id", func(p *Project) *int32 { return &p.ID }).PrimaryKey(),
		schema.Scalar("Name", func(p *Project) *string { return &p.Name }).Required().Validate("max=50"),
	).Relate(
		schema.HasMany(func(p *Project) *[]*EmployeeProject { return &p.employeeProjects }),
	)
}

func employeeProjectMapping() *schema.Mapping[EmployeeProject] {
	return schema.NewMapping(
		schema.Scalar("EmployeeId", func(ep *EmployeeProject) *int32 { return &ep.EmployeeID }).PrimaryKey(),
		schema.Scalar("ProjectId", func(ep *EmployeeProject) *int32 { return &ep.ProjectID }).PrimaryKey(),
	).Relate(
		schema.RefersTo("EmployeeId", func(ep *EmployeeProject) **Employee { return &ep.employee }),
		schema.RefersTo("ProjectId", func(ep *EmployeeProject) **Project { return &ep.project }),
	).AsJoin()
}
