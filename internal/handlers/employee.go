package handlers

import (
	"github.com/a-h/templ"

	"github.com/csg33k/masterdash/internal/domain"
	"github.com/csg33k/masterdash/internal/forms"
	"github.com/csg33k/masterdash/internal/grid"
	"github.com/csg33k/masterdash/internal/i18n"
	"github.com/csg33k/masterdash/internal/ports"
	"github.com/csg33k/masterdash/internal/templates"
)

const employeePath = "/master/employee"

func employeeResource(h *Handler) *resource[domain.Employee, domain.EmployeeForm] {
	return &resource[domain.Employee, domain.EmployeeForm]{
		h:        h,
		name:     "employee",
		path:     employeePath,
		lookup:   func() ports.Lookup[domain.Employee] { return h.data.Employees() },
		id:       func(e domain.Employee) string { return e.ID },
		columns:  EmployeeColumns,
		formFrom: domain.EmployeeFormFrom,
		empty:    func() domain.EmployeeForm { return domain.EmployeeForm{Position: domain.DefaultPosition} },
		parse:    forms.EmployeeFromValues,
		validate: forms.EmployeeValidator,
		fields:   employeeFields,
	}
}

// EmployeeColumns is the employee grid in the language of loc.
func EmployeeColumns(loc *i18n.Localizer) []grid.Column[domain.Employee] {
	col := func(key string) string { return loc.T("employee:columns." + key) }
	return []grid.Column[domain.Employee]{
		{Key: "id", Header: col("id")},
		{Key: "name", Header: col("name")},
		{Key: "email", Header: col("email")},
		{ID: "position", Header: col("position"), Value: func(e domain.Employee) any {
			return positionLabel(loc, e.Position)
		}},
		{ID: "status", Header: col("status"),
			Value: func(e domain.Employee) any { return statusLabel(loc, e.Status) },
			Cell: func(v any, e domain.Employee) templ.Component {
				return templates.Badge(e.Status, grid.Text(v))
			}},
		{Key: "rating", Header: col("rating"), Cell: func(v any, _ domain.Employee) templ.Component {
			n, _ := v.(int)
			return templates.Stars(n)
		}},
		{Key: "joinedAt", Header: col("joinedAt")},
		actionColumn(loc, col("action"), employeePath, func(e domain.Employee) string { return e.ID }),
	}
}

func employeeFields(loc *i18n.Localizer, f domain.EmployeeForm, errs forms.Errors, mode forms.Mode) []templates.Field {
	label := func(key string) string { return loc.T("employee:form.fields." + key) }
	positions := make([]templates.Option, len(domain.Positions))
	for i, p := range domain.Positions {
		positions[i] = templates.Option{Value: p, Label: positionLabel(loc, p), Selected: p == f.Position}
	}
	return []templates.Field{
		{Name: "name", Label: label("name"), Type: "text", Value: f.Name, Required: true, Error: errs.Get("name")},
		{Name: "email", Label: label("email"), Type: "email", Value: f.Email, Required: true, Error: errs.Get("email")},
		{Name: "position", Label: label("position"), Options: positions, Required: true, Error: errs.Get("position")},
		{Name: "startDate", Label: label("startDate"), Type: "date", Value: f.StartDate, Required: true, Error: errs.Get("startDate")},
		{Name: "password", Label: label("password"), Type: "password", Required: mode == forms.Create, Error: errs.Get("password")},
		{Name: "confirmPassword", Label: label("confirmPassword"), Type: "password", Required: mode == forms.Create, Error: errs.Get("confirmPassword")},
	}
}

func positionLabel(loc *i18n.Localizer, position string) string {
	return translated(loc, "employee:form.positions."+lowerCamel(position), position)
}
