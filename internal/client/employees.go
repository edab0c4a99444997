package client

import (
	"context"
	"net/http"

	"github.com/flightplanner/client/internal/domain"
)

// ListEmployees handles GET /employees.
func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	out, err := send[[]domain.Employee](ctx, c, http.MethodGet, "/employees", nil)
	if err != nil {
		return nil, wrap("ListEmployees", err)
	}
	if out == nil {
		out = []domain.Employee{}
	}
	return out, nil
}

// GetEmployee handles GET /employees/{id}.
func (c *Client) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	p, err := employeePath(id, "")
	if err != nil {
		return domain.Employee{}, wrap("GetEmployee", err)
	}
	out, err := send[domain.Employee](ctx, c, http.MethodGet, p, nil)
	return out, wrap("GetEmployee", err)
}

// CreateEmployee handles POST /employees.
func (c *Client) CreateEmployee(ctx context.Context, in domain.NewEmployee) (domain.Employee, error) {
	out, err := send[domain.Employee](ctx, c, http.MethodPost, "/employees", in)
	return out, wrap("CreateEmployee", err)
}

// UpdateEmployee handles PATCH /employees/{id}.
func (c *Client) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) (domain.Employee, error) {
	p, err := employeePath(id, "")
	if err != nil {
		return domain.Employee{}, wrap("UpdateEmployee", err)
	}
	out, err := send[domain.Employee](ctx, c, http.MethodPatch, p, patch)
	return out, wrap("UpdateEmployee", err)
}

// DeleteEmployee handles DELETE /employees/{id}.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	p, err := employeePath(id, "")
	if err != nil {
		return wrap("DeleteEmployee", err)
	}
	return wrap("DeleteEmployee", c.sendDelete(ctx, p, "employee"))
}

// employeePath returns /employees/{id}[/suffix].
func employeePath(id, suffix string) (string, error) {
	p, err := pathParam("id", id)
	if err != nil {
		return "", err
	}
	return "/employees/" + p + suffix, nil
}
