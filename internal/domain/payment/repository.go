package payment

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows payment listings.
type ListFilter struct {
	UserID *uuid.UUID
	Status *Status
	// Reviewed selects payments past review (Approved or Denied) when true.
	Reviewed  bool
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// Repository defines the persistence operations for payments.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	List(ctx context.Context, filter ListFilter) ([]*Payment, error)
}
