package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/payportal/payportal/internal/domain/user"
)

// EmployeeService handles the admin's employee account management.
type EmployeeService struct {
	users user.Repository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(users user.Repository) *EmployeeService {
	return &EmployeeService{users: users}
}

// List lists employee accounts.
func (s *EmployeeService) List(ctx context.Context) ([]*user.User, error) {
	return s.users.ListByRole(ctx, user.RoleEmployee)
}

// Create provisions a new employee account.
func (s *EmployeeService) Create(ctx context.Context, username, fullName, password string) (*user.User, error) {
	u, err := user.NewEmployee(username, fullName, password)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an employee account.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}
