package handlers

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/csg33k/masterdash/internal/domain"
	"github.com/csg33k/masterdash/internal/forms"
	"github.com/csg33k/masterdash/internal/grid"
	"github.com/csg33k/masterdash/internal/i18n"
	"github.com/csg33k/masterdash/internal/ports"
	"github.com/csg33k/masterdash/internal/templates"
)

const customerPath = "/master/customer"

func customerResource(h *Handler) *resource[domain.Customer, domain.CustomerForm] {
	return &resource[domain.Customer, domain.CustomerForm]{
		h:        h,
		name:     "customer",
		path:     customerPath,
		lookup:   func() ports.Lookup[domain.Customer] { return h.data.Customers() },
		id:       func(c domain.Customer) string { return c.ID },
		columns:  CustomerColumns,
		formFrom: domain.CustomerFormFrom,
		empty:    func() domain.CustomerForm { return domain.CustomerForm{Status: domain.CustomerStatuses[0]} },
		parse:    forms.CustomerFromValues,
		validate: func(loc *i18n.Localizer, _ forms.Mode) func(domain.CustomerForm) forms.Errors {
			return forms.CustomerValidator(loc)
		},
		fields: customerFields,
	}
}

// amount is a sum in cents. It sorts as a number and prints as a plain
// two-decimal currency value for filtering and export.
type amount int64

func (a amount) String() string {
	sign := ""
	if a < 0 {
		sign, a = "-", -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, a/100, a%100)
}

// CustomerColumns is the customer grid in the language of loc. Spent is
// sorted by cents, exported as a two-decimal amount and shown formatted.
func CustomerColumns(loc *i18n.Localizer) []grid.Column[domain.Customer] {
	col := func(key string) string { return loc.T("customer:columns." + key) }
	return []grid.Column[domain.Customer]{
		{Key: "id", Header: col("id")},
		{Key: "name", Header: col("name")},
		{Key: "company", Header: col("company")},
		{Key: "email", Header: col("email")},
		{Key: "phone", Header: col("phone")},
		{Key: "city", Header: col("city")},
		{ID: "status", Header: col("status"),
			Value: func(c domain.Customer) any { return statusLabel(loc, c.Status) },
			Cell: func(v any, c domain.Customer) templ.Component {
				return templates.Badge(c.Status, grid.Text(v))
			}},
		{ID: "spent", Header: col("spent"),
			Value: func(c domain.Customer) any { return amount(c.Spent) },
			Cell: func(_ any, c domain.Customer) templ.Component {
				return templ.Raw(templates.Money(c.Spent))
			}},
		{Key: "since", Header: col("since")},
		actionColumn(loc, col("action"), customerPath, func(c domain.Customer) string { return c.ID }),
	}
}

func customerFields(loc *i18n.Localizer, f domain.CustomerForm, errs forms.Errors, _ forms.Mode) []templates.Field {
	label := func(key string) string { return loc.T("customer:form.fields." + key) }
	statuses := make([]templates.Option, len(domain.CustomerStatuses))
	for i, s := range domain.CustomerStatuses {
		statuses[i] = templates.Option{Value: s, Label: statusLabel(loc, s), Selected: s == f.Status}
	}
	return []templates.Field{
		{Name: "name", Label: label("name"), Type: "text", Value: f.Name, Required: true, Error: errs.Get("name")},
		{Name: "company", Label: label("company"), Type: "text", Value: f.Company, Error: errs.Get("company")},
		{Name: "email", Label: label("email"), Type: "email", Value: f.Email, Required: true, Error: errs.Get("email")},
		{Name: "phone", Label: label("phone"), Type: "tel", Value: f.Phone, Error: errs.Get("phone")},
		{Name: "city", Label: label("city"), Type: "text", Value: f.City, Error: errs.Get("city")},
		{Name: "status", Label: label("status"), Options: statuses, Required: true, Error: errs.Get("status")},
	}
}
