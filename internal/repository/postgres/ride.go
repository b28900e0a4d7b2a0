package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"careride/internal/domain"
	"careride/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	db *sql.DB
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{db: db}
}

const rideColumns = `
	id, requester_id, pickup_address, destination_address, requested_time,
	special_needs, status, assigned_volunteer_id, assigned_time,
	completed_time, distance_km, estimated_duration_minutes, created_at, version
`

// Create persists a new ride request.
func (r *RideRepository) Create(ctx context.Context, ride *domain.RideRequest) error {
	query := `
		INSERT INTO ride_requests (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		ride.ID,
		ride.RequesterID,
		ride.PickupAddress,
		ride.DestinationAddress,
		ride.RequestedTime,
		nullString(ride.SpecialNeeds),
		ride.Status,
		nullString(ride.AssignedVolunteerID),
		nullTime(ride.AssignedTime),
		nullTime(ride.CompletedTime),
		ride.DistanceKm,
		ride.EstimatedDurationMinutes,
		ride.CreatedAt,
		ride.Version,
	)
	return err
}

// GetByID retrieves a ride request by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.RideRequest, error) {
	query := `SELECT ` + rideColumns + ` FROM ride_requests WHERE id = $1`

	ride, err := scanRide(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return ride, err
}

// GetAll retrieves ride requests, newest first, optionally filtered by status.
func (r *RideRepository) GetAll(ctx context.Context, status domain.RideStatus) ([]*domain.RideRequest, error) {
	query := `SELECT ` + rideColumns + ` FROM ride_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT 200`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.RideRequest
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Update writes the ride conditionally on its version. The WHERE clause on
// version is what makes concurrent read-modify-write cycles safe: the loser
// matches zero rows and gets ErrConcurrentModification.
func (r *RideRepository) Update(ctx context.Context, ride *domain.RideRequest) error {
	query := `
		UPDATE ride_requests
		SET status = $1, assigned_volunteer_id = $2, assigned_time = $3,
		    completed_time = $4, special_needs = $5, version = version + 1
		WHERE id = $6 AND version = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		ride.Status,
		nullString(ride.AssignedVolunteerID),
		nullTime(ride.AssignedTime),
		nullTime(ride.CompletedTime),
		nullString(ride.SpecialNeeds),
		ride.ID,
		ride.Version,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Distinguish a missing ride from a lost version race.
		if _, getErr := r.GetByID(ctx, ride.ID); getErr != nil {
			return getErr
		}
		return repository.ErrConcurrentModification
	}

	ride.Version++
	return nil
}

// Delete removes a ride request by ID.
func (r *RideRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ride_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanRide(s scanner) (*domain.RideRequest, error) {
	var ride domain.RideRequest
	var specialNeeds, assignedVolunteerID sql.NullString
	var assignedTime, completedTime sql.NullTime

	err := s.Scan(
		&ride.ID,
		&ride.RequesterID,
		&ride.PickupAddress,
		&ride.DestinationAddress,
		&ride.RequestedTime,
		&specialNeeds,
		&ride.Status,
		&assignedVolunteerID,
		&assignedTime,
		&completedTime,
		&ride.DistanceKm,
		&ride.EstimatedDurationMinutes,
		&ride.CreatedAt,
		&ride.Version,
	)
	if err != nil {
		return nil, err
	}

	ride.SpecialNeeds = specialNeeds.String
	ride.AssignedVolunteerID = assignedVolunteerID.String
	if assignedTime.Valid {
		ride.AssignedTime = assignedTime.Time
	}
	if completedTime.Valid {
		ride.CompletedTime = completedTime.Time
	}

	return &ride, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
