// Package forms validates submitted master-data forms.
//
// Validation never fails with an error: problems are reported per field as a
// single translated message, and a valid payload is handed to the caller's
// submit handler.
package forms

import (
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/csg33k/masterdash/internal/domain"
	"github.com/csg33k/masterdash/internal/i18n"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Errors maps a field name to its message.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

// Get returns the message for field, or "".
func (e Errors) Get(field string) string { return e[field] }

// Mode selects the create or edit variant of a schema.
type Mode int

const (
	Create Mode = iota
	Edit
)

// Submit validates payload with validate and calls handle only when every
// field passes. The returned Errors is empty on success.
func Submit[T any](payload T, validate func(T) Errors, handle func(T)) Errors {
	errs := validate(payload)
	if !errs.OK() {
		return errs
	}
	if handle != nil {
		handle(payload)
	}
	return errs
}

// EmployeeFromValues reads the employee form fields.
func EmployeeFromValues(v url.Values) domain.EmployeeForm {
	return domain.EmployeeForm{
		Name:            strings.TrimSpace(v.Get("name")),
		Email:           strings.TrimSpace(v.Get("email")),
		Position:        v.Get("position"),
		Password:        v.Get("password"),
		ConfirmPassword: v.Get("confirmPassword"),
		StartDate:       strings.TrimSpace(v.Get("startDate")),
	}
}

// CustomerFromValues reads the customer form fields.
func CustomerFromValues(v url.Values) domain.CustomerForm {
	return domain.CustomerForm{
		Name:    strings.TrimSpace(v.Get("name")),
		Company: strings.TrimSpace(v.Get("company")),
		Email:   strings.TrimSpace(v.Get("email")),
		Phone:   strings.TrimSpace(v.Get("phone")),
		City:    strings.TrimSpace(v.Get("city")),
		Status:  v.Get("status"),
	}
}

// EmployeeValidator returns the employee schema for mode. In Edit mode the
// password pair is only checked when one of them is filled in.
func EmployeeValidator(loc *i18n.Localizer, mode Mode) func(domain.EmployeeForm) Errors {
	return func(f domain.EmployeeForm) Errors {
		errs := Errors{}
		if f.Name == "" {
			errs["name"] = loc.T("message:required_field")
		}
		if !validEmail(f.Email) {
			errs["email"] = loc.T("message:invalid_format")
		}
		if !slices.Contains(domain.Positions, f.Position) {
			errs["position"] = loc.T("message:invalid_format")
		}

		checkPasswords := mode == Create || f.Password != "" || f.ConfirmPassword != ""
		if checkPasswords {
			minMsg := loc.T("message:min_length", i18n.Args{"min": MinPasswordLength})
			if utf8.RuneCountInString(f.Password) < MinPasswordLength {
				errs["password"] = minMsg
			}
			if f.ConfirmPassword != "" && utf8.RuneCountInString(f.ConfirmPassword) < MinPasswordLength {
				errs["confirmPassword"] = minMsg
			} else if f.Password != f.ConfirmPassword {
				errs["confirmPassword"] = loc.T("message:confirmPassword")
			}
		}

		if f.StartDate == "" {
			errs["startDate"] = loc.T("message:required_field")
		} else if _, err := time.Parse(time.DateOnly, f.StartDate); err != nil {
			errs["startDate"] = loc.T("message:invalid_format")
		}
		return errs
	}
}

// CustomerValidator returns the customer schema.
func CustomerValidator(loc *i18n.Localizer) func(domain.CustomerForm) Errors {
	return func(f domain.CustomerForm) Errors {
		errs := Errors{}
		if f.Name == "" {
			errs["name"] = loc.T("message:required_field")
		}
		if !validEmail(f.Email) {
			errs["email"] = loc.T("message:invalid_format")
		}
		if f.Phone != "" && !validPhone(f.Phone) {
			errs["phone"] = loc.T("message:invalid_format")
		}
		if !slices.Contains(domain.CustomerStatuses, f.Status) {
			errs["status"] = loc.T("message:invalid_format")
		}
		return errs
	}
}

// validEmail accepts a bare address, no display name.
func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && addr.Name == ""
}

func validPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-() ", r):
		default:
			return false
		}
	}
	return digits >= 6
}
