package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightplanner/client/internal/domain"
	"github.com/flightplanner/client/internal/form"
	"github.com/flightplanner/client/internal/forms"
)

func validEmployee() domain.NewEmployee {
	return domain.NewEmployee{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane.doe@example.com",
		Department: "Engineering",
		Title:      "Engineer",
	}
}

func TestValidateEmployee_Valid(t *testing.T) {
	assert.Empty(t, forms.ValidateEmployee(validEmployee()))
}

func TestValidateEmployee_MissingFirstNameOnly(t *testing.T) {
	errs := forms.ValidateEmployee(domain.NewEmployee{FirstName: "", LastName: "Doe", Email: "a@b.co"})

	assert.Equal(t, form.Errors{"firstName": "First name is required"}, errs)
}

func TestValidateEmployee_WhitespaceNamesAreMissing(t *testing.T) {
	e := validEmployee()
	e.FirstName = "  "
	e.LastName = "\t"

	errs := forms.ValidateEmployee(e)

	assert.Equal(t, "First name is required", errs["firstName"])
	assert.Equal(t, "Last name is required", errs["lastName"])
}

func TestValidateEmployee_EmailRequired(t *testing.T) {
	e := validEmployee()
	e.Email = "   "

	assert.Equal(t, "Email is required", forms.ValidateEmployee(e)["email"])
}

func TestValidateEmployee_BadEmailShapes(t *testing.T) {
	for _, email := range []string{
		"plain",
		"no-at.example.com",
		"a@b",
		"a@@b.co",
		"a b@c.de",
		"a@b c.de",
		" a@b.co",
	} {
		t.Run(email, func(t *testing.T) {
			e := validEmployee()
			e.Email = email

			f := forms.NewEmployeeForm()
			f.ResetTo(e)

			assert.Equal(t, "Invalid email format", f.Errors()["email"])
			assert.False(t, f.Valid())
		})
	}
}

func TestValidateEmployee_DepartmentAndTitleNotChecked(t *testing.T) {
	e := validEmployee()
	e.Department = ""
	e.Title = ""

	assert.Empty(t, forms.ValidateEmployee(e))
}

func TestEmployeeReady_requiresDepartmentAndTitle(t *testing.T) {
	f := forms.NewEmployeeForm()
	form.Set(f, forms.EmployeeFirstName, "Jane")
	form.Set(f, forms.EmployeeLastName, "Doe")
	form.Set(f, forms.EmployeeEmail, "jane@example.com")

	require.True(t, f.Valid())
	assert.False(t, forms.EmployeeReady(f))

	form.Set(f, forms.EmployeeDepartment, "Sales")
	assert.False(t, forms.EmployeeReady(f))

	form.Set(f, forms.EmployeeTitle, "Rep")
	assert.True(t, forms.EmployeeReady(f))
}

func TestNewEmployeeForm_startsInvalidAndClean(t *testing.T) {
	f := forms.NewEmployeeForm()

	assert.False(t, f.Dirty())
	assert.False(t, f.Valid())
	assert.Equal(t, []string{"email", "firstName", "lastName"}, f.Errors().Fields())
}

func TestTrimEmployee(t *testing.T) {
	got := forms.TrimEmployee(domain.NewEmployee{
		FirstName:  " Jane ",
		LastName:   "Doe\n",
		Email:      " j@d.io",
		Department: " Ops",
		Title:      "Lead ",
	})

	assert.Equal(t, domain.NewEmployee{
		FirstName: "Jane", LastName: "Doe", Email: "j@d.io", Department: "Ops", Title: "Lead",
	}, got)
}
