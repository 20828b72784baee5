package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	domainerrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/service"
	"github.com/payportal/payportal/pkg/sanitize"
)

// AdminController manages employee accounts.
type AdminController struct {
	employees *service.EmployeeService
}

func NewAdminController(employees *service.EmployeeService) *AdminController {
	return &AdminController{employees: employees}
}

// List returns all employee accounts.
// GET /api/v1/admin/employees
func (c *AdminController) List(w http.ResponseWriter, r *http.Request) {
	employees, err := c.employees.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]UserResponse, 0, len(employees))
	for _, u := range employees {
		out = append(out, FromUser(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create provisions a new employee account.
// POST /api/v1/admin/employees
func (c *AdminController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := c.employees.Create(r.Context(),
		sanitize.StripSymbols(req.Username),
		sanitize.HTML(req.FullName),
		req.Password,
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, FromUser(u))
}

// Delete removes an employee account.
// DELETE /api/v1/admin/employees/{id}
func (c *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domainerrors.ErrUserNotFound)
		return
	}

	if err := c.employees.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{})
}
