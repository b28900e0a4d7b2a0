package postgres

import (
	"context"
	"database/sql"
	"errors"

	"careride/internal/domain"
	"careride/internal/repository"
)

// VolunteerRepository implements repository.VolunteerRepository using
// PostgreSQL. Availability windows are stored in their comma-separated
// text encoding.
type VolunteerRepository struct {
	db *sql.DB
}

// NewVolunteerRepository creates a new VolunteerRepository.
func NewVolunteerRepository(db *sql.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

// Create adds a new volunteer.
func (r *VolunteerRepository) Create(ctx context.Context, volunteer *domain.Volunteer) error {
	query := `
		INSERT INTO volunteers (id, name, phone, car_model, license_plate, availability, current_location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		volunteer.ID,
		volunteer.Name,
		volunteer.Phone,
		nullString(volunteer.CarModel),
		nullString(volunteer.LicensePlate),
		domain.FormatAvailability(volunteer.Availability),
		nullString(volunteer.CurrentLocation),
		volunteer.CreatedAt,
	)
	return err
}

// GetByID retrieves a volunteer by ID.
func (r *VolunteerRepository) GetByID(ctx context.Context, id string) (*domain.Volunteer, error) {
	query := `
		SELECT id, name, phone, car_model, license_plate, availability, current_location, created_at
		FROM volunteers WHERE id = $1
	`
	return scanVolunteer(r.db.QueryRowContext(ctx, query, id))
}

// GetAll retrieves all volunteers.
func (r *VolunteerRepository) GetAll(ctx context.Context) ([]*domain.Volunteer, error) {
	query := `
		SELECT id, name, phone, car_model, license_plate, availability, current_location, created_at
		FROM volunteers ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var volunteers []*domain.Volunteer
	for rows.Next() {
		volunteer, err := scanVolunteerRow(rows)
		if err != nil {
			return nil, err
		}
		volunteers = append(volunteers, volunteer)
	}
	return volunteers, rows.Err()
}

// Update replaces the mutable fields of a volunteer.
func (r *VolunteerRepository) Update(ctx context.Context, volunteer *domain.Volunteer) error {
	query := `
		UPDATE volunteers
		SET name = $1, phone = $2, car_model = $3, license_plate = $4, availability = $5, current_location = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		volunteer.Name,
		volunteer.Phone,
		nullString(volunteer.CarModel),
		nullString(volunteer.LicensePlate),
		domain.FormatAvailability(volunteer.Availability),
		nullString(volunteer.CurrentLocation),
		volunteer.ID,
	)
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

// Delete removes a volunteer by ID.
func (r *VolunteerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM volunteers WHERE id = $1`, id)
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

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVolunteer(row *sql.Row) (*domain.Volunteer, error) {
	volunteer, err := scanVolunteerRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return volunteer, err
}

func scanVolunteerRow(s scanner) (*domain.Volunteer, error) {
	var volunteer domain.Volunteer
	var carModel, licensePlate, currentLocation sql.NullString
	var availability string

	err := s.Scan(
		&volunteer.ID,
		&volunteer.Name,
		&volunteer.Phone,
		&carModel,
		&licensePlate,
		&availability,
		&currentLocation,
		&volunteer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	volunteer.CarModel = carModel.String
	volunteer.LicensePlate = licensePlate.String
	volunteer.CurrentLocation = currentLocation.String

	windows, err := domain.ParseAvailability(availability)
	if err != nil {
		return nil, err
	}
	volunteer.Availability = windows

	return &volunteer, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
