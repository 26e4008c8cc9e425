package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/masterdash/internal/domain"
	"github.com/csg33k/masterdash/internal/i18n"
)

func localizer(t *testing.T) *i18n.Localizer {
	t.Helper()
	c, err := i18n.Load()
	require.NoError(t, err)
	return c.Localizer("en")
}

func validEmployee() domain.EmployeeForm {
	return domain.EmployeeForm{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Position:        "Engineer",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		StartDate:       "2024-03-01",
	}
}

func TestEmployeeCreateValid(t *testing.T) {
	validate := EmployeeValidator(localizer(t), Create)
	assert.Empty(t, validate(validEmployee()))
}

func TestEmployeeCreateFieldErrors(t *testing.T) {
	validate := EmployeeValidator(localizer(t), Create)

	errs := validate(domain.EmployeeForm{
		Email:    "not-an-email",
		Position: "Manager",
		Password: "abc",
	})
	assert.Equal(t, Errors{
		"name":            "This field is required",
		"email":           "Invalid format",
		"position":        "Invalid format",
		"password":        "Must be at least 6 characters",
		"confirmPassword": "Passwords do not match",
		"startDate":       "This field is required",
	}, errs)
}

func TestEmployeeConfirmPassword(t *testing.T) {
	validate := EmployeeValidator(localizer(t), Create)

	f := validEmployee()
	f.ConfirmPassword = "secret2"
	assert.Equal(t, Errors{"confirmPassword": "Passwords do not match"}, validate(f))

	f.ConfirmPassword = "abc"
	assert.Equal(t, Errors{"confirmPassword": "Must be at least 6 characters"}, validate(f))
}

func TestEmployeeEditPasswordOptional(t *testing.T) {
	validate := EmployeeValidator(localizer(t), Edit)

	f := validEmployee()
	f.Password, f.ConfirmPassword = "", ""
	assert.Empty(t, validate(f))

	f.Password = "newpass"
	assert.Equal(t, Errors{"confirmPassword": "Passwords do not match"}, validate(f))
}

func TestEmployeeStartDateFormat(t *testing.T) {
	validate := EmployeeValidator(localizer(t), Create)
	f := validEmployee()
	f.StartDate = "03/01/2024"
	assert.Equal(t, Errors{"startDate": "Invalid format"}, validate(f))
}

func TestEmailRejectsDisplayNames(t *testing.T) {
	assert.True(t, validEmail("a@b.co"))
	assert.False(t, validEmail("Jane <jane@example.com>"))
	assert.False(t, validEmail(""))
}

func TestCustomerValidator(t *testing.T) {
	validate := CustomerValidator(localizer(t))

	ok := domain.CustomerForm{Name: "Acme", Email: "ops@acme.test", Phone: "+1 (555) 010-2000", Status: "Active"}
	assert.Empty(t, validate(ok))

	bad := domain.CustomerForm{Email: "x", Phone: "call me", Status: "Gone"}
	errs := validate(bad)
	assert.ElementsMatch(t, []string{"name", "email", "phone", "status"}, keys(errs))
}

func TestSubmitCallsHandlerOnlyWhenValid(t *testing.T) {
	validate := EmployeeValidator(localizer(t), Create)

	var got *domain.EmployeeForm
	handle := func(f domain.EmployeeForm) { got = &f }

	errs := Submit(domain.EmployeeForm{}, validate, handle)
	assert.False(t, errs.OK())
	assert.Nil(t, got)
	assert.Equal(t, "This field is required", errs.Get("name"))

	errs = Submit(validEmployee(), validate, handle)
	assert.True(t, errs.OK())
	require.NotNil(t, got)
	assert.Equal(t, "Jane Doe", got.Name)
}

func TestFromValuesTrims(t *testing.T) {
	v := url.Values{"name": {"  Jane "}, "email": {" j@x.io "}, "position": {"Analyst"}, "startDate": {" 2024-01-02 "}}
	f := EmployeeFromValues(v)
	assert.Equal(t, domain.EmployeeForm{Name: "Jane", Email: "j@x.io", Position: "Analyst", StartDate: "2024-01-02"}, f)

	c := CustomerFromValues(url.Values{"name": {" Acme "}, "status": {"Lead"}})
	assert.Equal(t, domain.CustomerForm{Name: "Acme", Status: "Lead"}, c)
}

func keys(e Errors) []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	return out
}
