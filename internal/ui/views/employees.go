package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tms/internal/importer"
	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
	"github.com/tgienger/tms/internal/ui/styles"
)

// EmployeesView is the employee table with department filter and import
type EmployeesView struct {
	*resourceView[models.Employee]
}

func departmentOptions() []option {
	opts := make([]option, len(models.Departments))
	for i, d := range models.Departments {
		opts[i] = option{label: string(d), value: string(d)}
	}
	return opts
}

func departmentNames() []string {
	out := make([]string, len(models.Departments))
	for i, d := range models.Departments {
		out[i] = string(d)
	}
	return out
}

// NewEmployeesView creates the employee screen
func NewEmployeesView(d Deps, lists *Lists) *EmployeesView {
	cfg := resourceConfig[models.Employee]{
		title: "Employees",
		noun:  "employee",
		columns: []column[models.Employee]{
			{title: "ID", width: 6, value: func(e models.Employee) string { return e.ID.String() }},
			{title: "Name", width: 22, value: func(e models.Employee) string { return e.Name }},
			{
				title: "Department", width: 12,
				value: func(e models.Employee) string { return string(e.Department) },
				color: func(e models.Employee) lipgloss.Color { return styles.DepartmentColor(string(e.Department)) },
			},
			{title: "Email", width: 28, value: func(e models.Employee) string { return e.Email }},
			{title: "Phone", width: 16, value: func(e models.Employee) string { return e.Phone }},
		},
		fields: []field[models.Employee]{
			{
				label: "Name", placeholder: "Full name",
				get: func(e models.Employee) string { return e.Name },
				set: func(e *models.Employee, s string) { e.Name = s },
			},
			{
				label: "Department", options: departmentOptions,
				get: func(e models.Employee) string { return string(e.Department) },
				set: func(e *models.Employee, s string) { e.Department = models.Department(s) },
			},
			{
				label: "Email", placeholder: "name@example.com",
				get: func(e models.Employee) string { return e.Email },
				set: func(e *models.Employee, s string) { e.Email = s },
			},
			{
				label: "Phone", placeholder: "Phone number",
				get: func(e models.Employee) string { return e.Phone },
				set: func(e *models.Employee, s string) { e.Phone = s },
			},
		},
		matcher:    listview.Employees,
		categories: departmentNames,
		blank:      func() models.Employee { return models.Employee{} },
		parse:      importer.EmployeeRows,
		emptyHint:  "No employees. Press 'n' to add one or 'i' to import a spreadsheet.",
	}
	return &EmployeesView{newResourceView(cfg, lists.Employees, d.PageSize)}
}
