package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
