package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"careride/internal/domain"
	"careride/internal/geo"
)

// 2025-07-26 is a Saturday.
var saturdayMorning = time.Date(2025, 7, 26, 10, 0, 0, 0, time.UTC)

var saturdayWindow = []domain.AvailabilityWindow{
	{Day: time.Saturday, Start: 8 * 60, End: 18 * 60},
}

func TestMatch_FiltersByAvailability(t *testing.T) {
	volunteerRepo := newMockVolunteerRepo()
	_ = volunteerRepo.Create(context.Background(), &domain.Volunteer{
		ID:           "vol-weekday",
		Name:         "Weekday Only",
		Availability: []domain.AvailabilityWindow{{Day: time.Monday, Start: 9 * 60, End: 17 * 60}},
	})
	_ = volunteerRepo.Create(context.Background(), &domain.Volunteer{
		ID:           "vol-saturday",
		Name:         "Saturday",
		Availability: saturdayWindow,
	})

	engine := NewMatchingEngine(volunteerRepo, NewTravelTimeRanker(geo.NewStaticProvider()))
	ride := &domain.RideRequest{PickupAddress: "12 Oak St", RequestedTime: saturdayMorning}

	got, err := engine.Match(context.Background(), ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "vol-saturday" {
		t.Errorf("expected vol-saturday, got %s", got.ID)
	}
}

func TestMatch_PicksNearestTravelTime(t *testing.T) {
	volunteerRepo := newMockVolunteerRepo()
	routes := geo.NewStaticProvider()

	for _, v := range []struct {
		id       string
		location string
		minutes  float64
	}{
		{"vol-far", "Far Side", 45},
		{"vol-near", "Next Door", 5},
		{"vol-mid", "Midtown", 20},
	} {
		_ = volunteerRepo.Create(context.Background(), &domain.Volunteer{
			ID:              v.id,
			Availability:    saturdayWindow,
			CurrentLocation: v.location,
		})
		routes.SetRoute(v.location, "12 Oak St", geo.Estimate{DistanceKm: v.minutes / 3, DurationMinutes: v.minutes})
	}

	engine := NewMatchingEngine(volunteerRepo, NewTravelTimeRanker(routes))
	ride := &domain.RideRequest{PickupAddress: "12 Oak St", RequestedTime: saturdayMorning}

	got, err := engine.Match(context.Background(), ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "vol-near" {
		t.Errorf("expected vol-near, got %s", got.ID)
	}
}

func TestMatch_TieBreaksOnVolunteerID(t *testing.T) {
	volunteerRepo := newMockVolunteerRepo()
	routes := geo.NewStaticProvider()

	for _, id := range []string{"vol-b", "vol-a", "vol-c"} {
		location := "base-" + id
		_ = volunteerRepo.Create(context.Background(), &domain.Volunteer{
			ID:              id,
			Availability:    saturdayWindow,
			CurrentLocation: location,
		})
		routes.SetRoute(location, "12 Oak St", geo.Estimate{DistanceKm: 4, DurationMinutes: 12})
	}

	engine := NewMatchingEngine(volunteerRepo, NewTravelTimeRanker(routes))
	ride := &domain.RideRequest{PickupAddress: "12 Oak St", RequestedTime: saturdayMorning}

	got, err := engine.Match(context.Background(), ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "vol-a" {
		t.Errorf("expected deterministic winner vol-a, got %s", got.ID)
	}
}

func TestMatch_VolunteerWithoutLocationRanksLast(t *testing.T) {
	volunteerRepo := newMockVolunteerRepo()
	routes := geo.NewStaticProvider()

	_ = volunteerRepo.Create(context.Background(), &domain.Volunteer{
		ID:           "vol-nowhere",
		Availability: saturdayWindow,
	})
	_ = volunteerRepo.Create(context.Background(), &domain.Volunteer{
		ID:              "vol-located",
		Availability:    saturdayWindow,
		CurrentLocation: "Midtown",
	})
	routes.SetRoute("Midtown", "12 Oak St", geo.Estimate{DistanceKm: 10, DurationMinutes: 30})

	engine := NewMatchingEngine(volunteerRepo, NewTravelTimeRanker(routes))
	ride := &domain.RideRequest{PickupAddress: "12 Oak St", RequestedTime: saturdayMorning}

	got, err := engine.Match(context.Background(), ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "vol-located" {
		t.Errorf("expected vol-located, got %s", got.ID)
	}
}

func TestMatch_FailedRouteDoesNotRejectCandidate(t *testing.T) {
	volunteerRepo := newMockVolunteerRepo()
	routes := geo.NewStaticProvider()

	_ = volunteerRepo.Create(context.Background(), &domain.Volunteer{
		ID:              "vol-unreachable",
		Availability:    saturdayWindow,
		CurrentLocation: "Island",
	})
	routes.FailRoute("Island", "12 Oak St")

	engine := NewMatchingEngine(volunteerRepo, NewTravelTimeRanker(routes))
	ride := &domain.RideRequest{PickupAddress: "12 Oak St", RequestedTime: saturdayMorning}

	// The only candidate still wins even though its route lookup failed.
	got, err := engine.Match(context.Background(), ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "vol-unreachable" {
		t.Errorf("expected vol-unreachable, got %s", got.ID)
	}
}

func TestMatch_NoVolunteerAvailable(t *testing.T) {
	volunteerRepo := newMockVolunteerRepo()
	_ = volunteerRepo.Create(context.Background(), &domain.Volunteer{
		ID:           "vol-weekday",
		Availability: []domain.AvailabilityWindow{{Day: time.Monday, Start: 9 * 60, End: 17 * 60}},
	})

	engine := NewMatchingEngine(volunteerRepo, NewTravelTimeRanker(geo.NewStaticProvider()))
	ride := &domain.RideRequest{PickupAddress: "12 Oak St", RequestedTime: saturdayMorning}

	if _, err := engine.Match(context.Background(), ride); !errors.Is(err, ErrNoVolunteerAvailable) {
		t.Errorf("expected ErrNoVolunteerAvailable, got %v", err)
	}
}

func TestMatch_EmptyPool(t *testing.T) {
	engine := NewMatchingEngine(newMockVolunteerRepo(), NewTravelTimeRanker(geo.NewStaticProvider()))
	ride := &domain.RideRequest{PickupAddress: "12 Oak St", RequestedTime: saturdayMorning}

	if _, err := engine.Match(context.Background(), ride); !errors.Is(err, ErrNoVolunteerAvailable) {
		t.Errorf("expected ErrNoVolunteerAvailable, got %v", err)
	}
}
