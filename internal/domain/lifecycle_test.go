package domain

import (
	"errors"
	"testing"
	"time"
)

func TestLifecycle_LegalTransitions(t *testing.T) {
	cases := []struct {
		from  RideStatus
		event RideEvent
		to    RideStatus
	}{
		{RideStatusPending, EventAssign, RideStatusAssigned},
		{RideStatusPending, EventCancel, RideStatusCancelled},
		{RideStatusAssigned, EventStart, RideStatusInProgress},
		{RideStatusAssigned, EventComplete, RideStatusCompleted},
		{RideStatusAssigned, EventCancel, RideStatusCancelled},
		{RideStatusInProgress, EventComplete, RideStatusCompleted},
		{RideStatusInProgress, EventCancel, RideStatusCancelled},
	}

	for _, tc := range cases {
		ride := &RideRequest{Status: tc.from}
		if err := ApplyEvent(ride, tc.event, "vol-1", time.Now()); err != nil {
			t.Errorf("%s + %s: unexpected error: %v", tc.from, tc.event, err)
			continue
		}
		if ride.Status != tc.to {
			t.Errorf("%s + %s: expected %s, got %s", tc.from, tc.event, tc.to, ride.Status)
		}
	}
}

func TestLifecycle_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from  RideStatus
		event RideEvent
	}{
		{RideStatusPending, EventStart},
		{RideStatusPending, EventComplete},
		{RideStatusAssigned, EventAssign},
		{RideStatusInProgress, EventAssign},
		{RideStatusInProgress, EventStart},
		{RideStatusCompleted, EventAssign},
		{RideStatusCompleted, EventStart},
		{RideStatusCompleted, EventComplete},
		{RideStatusCompleted, EventCancel},
		{RideStatusCancelled, EventAssign},
		{RideStatusCancelled, EventStart},
		{RideStatusCancelled, EventComplete},
		{RideStatusCancelled, EventCancel},
	}

	for _, tc := range cases {
		ride := &RideRequest{Status: tc.from}
		err := ApplyEvent(ride, tc.event, "vol-1", time.Now())
		if err == nil {
			t.Errorf("%s + %s: expected error", tc.from, tc.event)
			continue
		}

		var transitionErr *InvalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Errorf("%s + %s: expected InvalidTransitionError, got %v", tc.from, tc.event, err)
			continue
		}
		if transitionErr.From != tc.from || transitionErr.Event != tc.event {
			t.Errorf("error should carry from=%s event=%s, got from=%s event=%s",
				tc.from, tc.event, transitionErr.From, transitionErr.Event)
		}
		if ride.Status != tc.from {
			t.Errorf("%s + %s: status mutated to %s on failed transition", tc.from, tc.event, ride.Status)
		}
	}
}

func TestLifecycle_AssignSetsVolunteerAndTime(t *testing.T) {
	now := time.Date(2025, 7, 26, 9, 30, 0, 0, time.UTC)
	ride := &RideRequest{Status: RideStatusPending}

	if err := ApplyEvent(ride, EventAssign, "vol-7", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.AssignedVolunteerID != "vol-7" {
		t.Errorf("expected volunteer vol-7, got %q", ride.AssignedVolunteerID)
	}
	if !ride.AssignedTime.Equal(now) {
		t.Errorf("expected assigned time %v, got %v", now, ride.AssignedTime)
	}
}

func TestLifecycle_AssignRequiresVolunteer(t *testing.T) {
	ride := &RideRequest{Status: RideStatusPending}
	if err := ApplyEvent(ride, EventAssign, "", time.Now()); err == nil {
		t.Fatal("expected error for assign without volunteer id")
	}
	if ride.Status != RideStatusPending {
		t.Errorf("status should stay pending, got %s", ride.Status)
	}
}

func TestLifecycle_CompleteSetsCompletedTime(t *testing.T) {
	now := time.Date(2025, 7, 26, 11, 0, 0, 0, time.UTC)
	ride := &RideRequest{Status: RideStatusInProgress}

	if err := ApplyEvent(ride, EventComplete, "", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ride.CompletedTime.Equal(now) {
		t.Errorf("expected completed time %v, got %v", now, ride.CompletedTime)
	}
}

func TestLifecycle_TerminalStates(t *testing.T) {
	if !IsTerminal(RideStatusCompleted) || !IsTerminal(RideStatusCancelled) {
		t.Error("completed and cancelled must be terminal")
	}
	for _, s := range []RideStatus{RideStatusPending, RideStatusAssigned, RideStatusInProgress} {
		if IsTerminal(s) {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestParseRideStatus(t *testing.T) {
	for _, s := range []string{"pending", "assigned", "in_progress", "completed", "cancelled"} {
		if _, err := ParseRideStatus(s); err != nil {
			t.Errorf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseRideStatus("IN_PROGRESS"); err == nil {
		t.Error("status tokens are lowercase, expected parse failure")
	}
}
