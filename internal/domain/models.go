package domain

import "errors"

// ErrNotFound is returned by lookups when no record carries the requested ID.
var ErrNotFound = errors.New("record not found")

// Positions an employee may hold. The order is the order of the form select.
var Positions = []string{"Engineer", "Developer", "Designer", "Analyst", "Product Owner"}

// DefaultPosition pre-selects the position on an empty create form.
const DefaultPosition = "Engineer"

// CustomerStatuses are the allowed customer lifecycle states.
var CustomerStatuses = []string{"Active", "Inactive", "Lead"}

// Employee is one row of the employee master dataset.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Status   string `json:"status"`
	Rating   int    `json:"rating"`
	// JoinedAt is a calendar date, e.g. "2023-04-17".
	JoinedAt string `json:"joinedAt"`
}

// Field exposes employee attributes by their dataset key so grid columns can
// address them with a static key accessor.
func (e Employee) Field(key string) any {
	switch key {
	case "id":
		return e.ID
	case "name":
		return e.Name
	case "email":
		return e.Email
	case "position":
		return e.Position
	case "status":
		return e.Status
	case "rating":
		return e.Rating
	case "joinedAt":
		return e.JoinedAt
	}
	return nil
}

// Customer is one row of the customer master dataset.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Status  string `json:"status"`
	// Spent is lifetime revenue in cents.
	Spent int64  `json:"spent"`
	Since string `json:"since"`
}

func (c Customer) Field(key string) any {
	switch key {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "company":
		if c.Company == "" {
			return nil
		}
		return c.Company
	case "email":
		return c.Email
	case "phone":
		if c.Phone == "" {
			return nil
		}
		return c.Phone
	case "city":
		return c.City
	case "status":
		return c.Status
	case "spent":
		return c.Spent
	case "since":
		return c.Since
	}
	return nil
}

// EmployeeForm is the payload of the employee create/edit form.
type EmployeeForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Position        string `json:"position"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	// StartDate is "YYYY-MM-DD" as produced by a date input.
	StartDate string `json:"startDate"`
}

// CustomerForm is the payload of the customer create/edit form.
type CustomerForm struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Status  string `json:"status"`
}

// EmployeeFormFrom pre-populates the edit form from a stored row.
func EmployeeFormFrom(e Employee) EmployeeForm {
	return EmployeeForm{
		Name:      e.Name,
		Email:     e.Email,
		Position:  e.Position,
		StartDate: e.JoinedAt,
	}
}

// CustomerFormFrom pre-populates the edit form from a stored row.
func CustomerFormFrom(c Customer) CustomerForm {
	return CustomerForm{
		Name:    c.Name,
		Company: c.Company,
		Email:   c.Email,
		Phone:   c.Phone,
		City:    c.City,
		Status:  c.Status,
	}
}
