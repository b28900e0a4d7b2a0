package service

import (
	"context"
	"math"
	"sort"

	"careride/internal/domain"
	"careride/internal/geo"
	"careride/internal/repository"
)

// MatcherInterface defines the matching contract consumed by the
// coordinator. This interface allows for testing with mock implementations.
type MatcherInterface interface {
	Match(ctx context.Context, ride *domain.RideRequest) (*domain.Volunteer, error)
}

// Ensure MatchingEngine implements MatcherInterface.
var _ MatcherInterface = (*MatchingEngine)(nil)

// CandidateRanker orders candidate volunteers by fitness for a pickup,
// best first. The default ranker is greedy nearest-travel-time; a road
// network shortest-path ranker can be substituted without touching the
// coordinator.
type CandidateRanker interface {
	Rank(ctx context.Context, pickupAddress string, candidates []*domain.Volunteer) ([]*domain.Volunteer, error)
}

// MatchingEngine selects the best volunteer for a pending ride request.
type MatchingEngine struct {
	volunteerRepo repository.VolunteerRepository
	ranker        CandidateRanker
}

// NewMatchingEngine creates a new MatchingEngine.
func NewMatchingEngine(volunteerRepo repository.VolunteerRepository, ranker CandidateRanker) *MatchingEngine {
	return &MatchingEngine{
		volunteerRepo: volunteerRepo,
		ranker:        ranker,
	}
}

// Match filters the volunteer pool to those whose availability contains the
// requested time, ranks the survivors, and returns the best candidate.
func (e *MatchingEngine) Match(ctx context.Context, ride *domain.RideRequest) (*domain.Volunteer, error) {
	volunteers, err := e.volunteerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*domain.Volunteer
	for _, v := range volunteers {
		if v.AvailableAt(ride.RequestedTime) {
			candidates = append(candidates, v)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoVolunteerAvailable
	}

	ranked, err := e.ranker.Rank(ctx, ride.PickupAddress, candidates)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, ErrNoVolunteerAvailable
	}

	return ranked[0], nil
}

// TravelTimeRanker is the default greedy CandidateRanker: candidates are
// ordered by estimated travel time from their current location to the
// pickup, ascending, with volunteer id as the deterministic tie-break.
// Volunteers with no known location, or whose route cannot be estimated,
// sort last rather than being rejected.
type TravelTimeRanker struct {
	routes geo.RouteProvider
}

var _ CandidateRanker = (*TravelTimeRanker)(nil)

// NewTravelTimeRanker creates a TravelTimeRanker over the given provider.
func NewTravelTimeRanker(routes geo.RouteProvider) *TravelTimeRanker {
	return &TravelTimeRanker{routes: routes}
}

// Rank orders candidates by travel time to the pickup address.
func (r *TravelTimeRanker) Rank(ctx context.Context, pickupAddress string, candidates []*domain.Volunteer) ([]*domain.Volunteer, error) {
	type scored struct {
		volunteer *domain.Volunteer
		minutes   float64
	}

	scoredCandidates := make([]scored, 0, len(candidates))
	for _, v := range candidates {
		minutes := math.Inf(1)
		if v.CurrentLocation != "" {
			est, err := r.routes.Estimate(ctx, v.CurrentLocation, pickupAddress)
			if err == nil {
				minutes = est.DurationMinutes
			} else if ctx.Err() != nil {
				return nil, err
			}
		}
		scoredCandidates = append(scoredCandidates, scored{volunteer: v, minutes: minutes})
	}

	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		if scoredCandidates[i].minutes != scoredCandidates[j].minutes {
			return scoredCandidates[i].minutes < scoredCandidates[j].minutes
		}
		return scoredCandidates[i].volunteer.ID < scoredCandidates[j].volunteer.ID
	})

	ranked := make([]*domain.Volunteer, len(scoredCandidates))
	for i, s := range scoredCandidates {
		ranked[i] = s.volunteer
	}
	return ranked, nil
}
