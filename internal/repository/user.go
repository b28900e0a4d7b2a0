package repository

import (
	"context"

	"careride/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByPhone retrieves a user by phone number.
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// UpdateContact updates the mutable contact fields of a user.
	UpdateContact(ctx context.Context, id, phone, address string) (*domain.User, error)

	// Delete removes a user by ID.
	Delete(ctx context.Context, id string) error
}
