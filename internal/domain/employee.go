// Package domain contains the value records exchanged with the Flight Planner
// API. Field names follow the API's camelCase JSON contract.
// This package has no dependencies on the other internal packages.
package domain

import "time"

// Employee is a person who may travel. ID and the timestamps are assigned by
// the server; a locally created placeholder carries a "tmp-" id until the
// server response replaces it.
type Employee struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Department string     `json:"department,omitempty"`
	Title      string     `json:"title,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// NewEmployee is the create body: Employee minus id, active flag, and
// timestamps. It is also the value bag of the employee form.
type NewEmployee struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
}

// EmployeePatch is a partial update. Nil fields are left unchanged.
type EmployeePatch struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
	Title      *string `json:"title,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// AvatarUpload is the server's confirmation of a stored avatar image.
type AvatarUpload struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}
