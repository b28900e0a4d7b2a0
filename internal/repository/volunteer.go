package repository

import (
	"context"

	"careride/internal/domain"
)

// VolunteerRepository defines the persistence operations for volunteers.
type VolunteerRepository interface {
	// Create adds a new volunteer.
	Create(ctx context.Context, volunteer *domain.Volunteer) error

	// GetByID retrieves a volunteer by ID.
	GetByID(ctx context.Context, id string) (*domain.Volunteer, error)

	// GetAll retrieves all volunteers.
	GetAll(ctx context.Context) ([]*domain.Volunteer, error)

	// Update replaces the mutable fields of a volunteer.
	Update(ctx context.Context, volunteer *domain.Volunteer) error

	// Delete removes a volunteer by ID. Historical ride records keep their
	// assigned-volunteer reference; reads resolve it as unknown.
	Delete(ctx context.Context, id string) error
}
