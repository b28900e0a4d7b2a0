package domain

import (
	"fmt"
	"time"
)

// RideEvent is a lifecycle trigger applied to a ride request.
type RideEvent string

const (
	EventAssign   RideEvent = "assign"
	EventStart    RideEvent = "start"
	EventComplete RideEvent = "complete"
	EventCancel   RideEvent = "cancel"
)

// transitions is the full lifecycle table. Missing entries are illegal;
// completed and cancelled are terminal.
var transitions = map[RideStatus]map[RideEvent]RideStatus{
	RideStatusPending: {
		EventAssign: RideStatusAssigned,
		EventCancel: RideStatusCancelled,
	},
	RideStatusAssigned: {
		EventStart:    RideStatusInProgress,
		EventComplete: RideStatusCompleted,
		EventCancel:   RideStatusCancelled,
	},
	RideStatusInProgress: {
		EventComplete: RideStatusCompleted,
		EventCancel:   RideStatusCancelled,
	},
	RideStatusCompleted: {},
	RideStatusCancelled: {},
}

// InvalidTransitionError reports an illegal lifecycle event, carrying the
// state the ride was in and the event that was attempted.
type InvalidTransitionError struct {
	From  RideStatus
	Event RideEvent
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s a %s ride", e.Event, e.From)
}

// IsTerminal reports whether no events are legal from the given status.
func IsTerminal(s RideStatus) bool {
	return len(transitions[s]) == 0
}

// CanApply reports whether event is legal from the given status.
func CanApply(from RideStatus, event RideEvent) bool {
	_, ok := transitions[from][event]
	return ok
}

// ApplyEvent advances the ride through the lifecycle and maintains the
// dependent fields. For EventAssign, volunteerID must name the volunteer
// being assigned; it is ignored for every other event.
func ApplyEvent(r *RideRequest, event RideEvent, volunteerID string, now time.Time) error {
	next, ok := transitions[r.Status][event]
	if !ok {
		return &InvalidTransitionError{From: r.Status, Event: event}
	}

	switch event {
	case EventAssign:
		if volunteerID == "" {
			return fmt.Errorf("assign requires a volunteer id")
		}
		r.AssignedVolunteerID = volunteerID
		r.AssignedTime = now
	case EventComplete:
		r.CompletedTime = now
	}

	r.Status = next
	return nil
}
