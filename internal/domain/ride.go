package domain

import (
	"fmt"
	"time"
)

// RideStatus represents the current status of a ride request.
type RideStatus string

const (
	RideStatusPending    RideStatus = "pending"
	RideStatusAssigned   RideStatus = "assigned"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// ParseRideStatus validates a wire status token.
func ParseRideStatus(s string) (RideStatus, error) {
	switch RideStatus(s) {
	case RideStatusPending, RideStatusAssigned, RideStatusInProgress,
		RideStatusCompleted, RideStatusCancelled:
		return RideStatus(s), nil
	}
	return "", fmt.Errorf("unknown ride status %q", s)
}

// RideRequest represents a ride request in the system.
//
// AssignedVolunteerID and AssignedTime are set together or not at all;
// CompletedTime is set only when the status is completed. Both rules are
// enforced by ApplyEvent. DistanceKm and EstimatedDurationMinutes are
// computed once at creation and never change.
type RideRequest struct {
	ID                       string
	RequesterID              string
	PickupAddress            string
	DestinationAddress       string
	RequestedTime            time.Time
	SpecialNeeds             string
	Status                   RideStatus
	AssignedVolunteerID      string
	AssignedTime             time.Time
	CompletedTime            time.Time
	DistanceKm               float64
	EstimatedDurationMinutes float64
	CreatedAt                time.Time

	// Version is bumped on every successful update; repositories use it for
	// conditional writes.
	Version int64
}

// Assigned reports whether a volunteer is currently assigned.
func (r *RideRequest) Assigned() bool {
	return r.AssignedVolunteerID != ""
}

// Terminal reports whether the ride is in a state that permits no further
// transitions.
func (r *RideRequest) Terminal() bool {
	return IsTerminal(r.Status)
}
