// Package forms wires the generic form container to the employee and
// itinerary value bags: validators, field descriptors, and constructors.
package forms

import (
	"regexp"
	"strings"

	"github.com/flightplanner/client/internal/domain"
	"github.com/flightplanner/client/internal/form"
)

// emailPattern is a permissive local@domain.tld check, not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Employee form fields.
var (
	EmployeeFirstName = form.Field[domain.NewEmployee, string]{
		Name:  "firstName",
		Apply: func(e domain.NewEmployee, v string) domain.NewEmployee { e.FirstName = v; return e },
	}
	EmployeeLastName = form.Field[domain.NewEmployee, string]{
		Name:  "lastName",
		Apply: func(e domain.NewEmployee, v string) domain.NewEmployee { e.LastName = v; return e },
	}
	EmployeeEmail = form.Field[domain.NewEmployee, string]{
		Name:  "email",
		Apply: func(e domain.NewEmployee, v string) domain.NewEmployee { e.Email = v; return e },
	}
	EmployeeDepartment = form.Field[domain.NewEmployee, string]{
		Name:  "department",
		Apply: func(e domain.NewEmployee, v string) domain.NewEmployee { e.Department = v; return e },
	}
	EmployeeTitle = form.Field[domain.NewEmployee, string]{
		Name:  "title",
		Apply: func(e domain.NewEmployee, v string) domain.NewEmployee { e.Title = v; return e },
	}
)

// ValidateEmployee checks the name and email fields of an employee.
// Department and title are not checked here; see EmployeeReady.
func ValidateEmployee(v domain.NewEmployee) form.Errors {
	errs := form.Errors{}
	if strings.TrimSpace(v.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(v.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(v.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(v.Email) {
		errs["email"] = "Invalid email format"
	}
	return errs
}

// NewEmployeeForm returns an empty employee form.
func NewEmployeeForm() *form.Form[domain.NewEmployee] {
	return form.New(domain.NewEmployee{}, ValidateEmployee)
}

// EmployeeReady is the submit gate of the employee page: the form must be
// valid and department and title must both be filled in.
func EmployeeReady(f *form.Form[domain.NewEmployee]) bool {
	v := f.Values()
	return f.Valid() && v.Department != "" && v.Title != ""
}

// TrimEmployee returns v with surrounding whitespace removed from every field.
func TrimEmployee(v domain.NewEmployee) domain.NewEmployee {
	return domain.NewEmployee{
		FirstName:  strings.TrimSpace(v.FirstName),
		LastName:   strings.TrimSpace(v.LastName),
		Email:      strings.TrimSpace(v.Email),
		Department: strings.TrimSpace(v.Department),
		Title:      strings.TrimSpace(v.Title),
	}
}
