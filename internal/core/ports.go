package core

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines document store operations.
// Lookups return (nil, nil) when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error) // For uniqueness check
	FindAll(ctx context.Context) ([]*Employee, error)
	Save(ctx context.Context, employee *Employee) (*Employee, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// EventPublisher defines the contract for sending change events keyed by employee id.
type EventPublisher interface {
	PublishEmployee(ctx context.Context, employee *Employee) error
	PublishDeletion(ctx context.Context, id uuid.UUID) error
	Close() error
}
