package service

import "errors"

var (
	// ErrNoVolunteerAvailable is returned when matching yields no candidate.
	ErrNoVolunteerAvailable = errors.New("no volunteer available")

	// ErrUnknownRequester is returned when a ride names a requester that
	// does not exist.
	ErrUnknownRequester = errors.New("requester not found")

	// ErrUnknownVolunteer is returned when an assignment names a volunteer
	// that does not exist.
	ErrUnknownVolunteer = errors.New("volunteer not found")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidRequesterID is returned when requester ID is empty.
	ErrInvalidRequesterID = errors.New("invalid requester id")

	// ErrInvalidAddress is returned when pickup or destination is empty.
	ErrInvalidAddress = errors.New("pickup and destination addresses are required")

	// ErrInvalidRequestedTime is returned when the requested time is unset.
	ErrInvalidRequestedTime = errors.New("requested time is required")
)
