package postgres

import (
	"context"
	"database/sql"
)

// schema is the relational layout for the dispatch service. Assigned
// volunteer ids are intentionally not foreign keys: volunteers may be
// deleted independently of historical ride records.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL UNIQUE,
	address    TEXT NOT NULL,
	category   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS volunteers (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	phone            TEXT NOT NULL UNIQUE,
	car_model        TEXT,
	license_plate    TEXT,
	availability     TEXT NOT NULL DEFAULT '',
	current_location TEXT,
	created_at       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS ride_requests (
	id                         TEXT PRIMARY KEY,
	requester_id               TEXT NOT NULL REFERENCES users (id),
	pickup_address             TEXT NOT NULL,
	destination_address        TEXT NOT NULL,
	requested_time             TIMESTAMPTZ NOT NULL,
	special_needs              TEXT,
	status                     TEXT NOT NULL,
	assigned_volunteer_id      TEXT,
	assigned_time              TIMESTAMPTZ,
	completed_time             TIMESTAMPTZ,
	distance_km                DOUBLE PRECISION NOT NULL,
	estimated_duration_minutes DOUBLE PRECISION NOT NULL,
	created_at                 TIMESTAMPTZ NOT NULL,
	version                    BIGINT NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_ride_requests_status ON ride_requests (status);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
