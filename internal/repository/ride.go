package repository

import (
	"context"

	"careride/internal/domain"
)

// RideRepository defines the persistence operations for ride requests.
type RideRepository interface {
	// Create persists a new ride request.
	Create(ctx context.Context, ride *domain.RideRequest) error

	// GetByID retrieves a ride request by ID.
	GetByID(ctx context.Context, id string) (*domain.RideRequest, error)

	// GetAll retrieves ride requests, newest first. If status is non-empty,
	// only rides in that status are returned.
	GetAll(ctx context.Context, status domain.RideStatus) ([]*domain.RideRequest, error)

	// Update writes the ride conditionally on ride.Version matching the
	// stored version. On success the stored version is bumped and
	// ride.Version reflects it; a lost race returns
	// ErrConcurrentModification.
	Update(ctx context.Context, ride *domain.RideRequest) error

	// Delete removes a ride request by ID.
	Delete(ctx context.Context, id string) error
}
