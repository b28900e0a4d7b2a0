package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"careride/internal/domain"
	"careride/internal/geo"
	internalRedis "careride/internal/redis"
	"careride/internal/repository"
)

// rideLockTTL caps how long a crashed instance can hold a ride lock.
const rideLockTTL = 10 * time.Second

// DispatchCoordinator orchestrates the route provider, repositories,
// matching engine and ride lifecycle behind race-free operations. All
// mutating operations take the per-ride lock, re-read current state, apply
// the lifecycle rules and write back with a version check, so two
// concurrent transitions on the same ride can never both win.
type DispatchCoordinator struct {
	rideRepo      repository.RideRepository
	userRepo      repository.UserRepository
	volunteerRepo repository.VolunteerRepository
	routes        geo.RouteProvider
	matcher       MatcherInterface
	locks         internalRedis.RideLockStoreInterface
	notifier      *NotificationService
	now           func() time.Time
}

// NewDispatchCoordinator creates a new DispatchCoordinator.
func NewDispatchCoordinator(
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
	volunteerRepo repository.VolunteerRepository,
	routes geo.RouteProvider,
	matcher MatcherInterface,
	locks internalRedis.RideLockStoreInterface,
	notifier *NotificationService,
) *DispatchCoordinator {
	return &DispatchCoordinator{
		rideRepo:      rideRepo,
		userRepo:      userRepo,
		volunteerRepo: volunteerRepo,
		routes:        routes,
		matcher:       matcher,
		locks:         locks,
		notifier:      notifier,
		now:           time.Now,
	}
}

// CreateRideRequest contains the parameters for creating a ride request.
type CreateRideRequest struct {
	RequesterID        string
	PickupAddress      string
	DestinationAddress string
	RequestedTime      time.Time
	SpecialNeeds       string
}

// CreateRequest validates the requester, estimates the route and persists a
// new pending ride. Nothing is persisted if the route estimate fails; the
// provider call happens before the record exists and holds no ride lock.
func (c *DispatchCoordinator) CreateRequest(ctx context.Context, req CreateRideRequest) (*domain.RideRequest, error) {
	if err := c.validateCreateRequest(req); err != nil {
		return nil, err
	}

	if _, err := c.userRepo.GetByID(ctx, req.RequesterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownRequester
		}
		return nil, err
	}

	est, err := c.routes.Estimate(ctx, req.PickupAddress, req.DestinationAddress)
	if err != nil {
		return nil, err
	}

	ride := &domain.RideRequest{
		ID:                       uuid.New().String(),
		RequesterID:              req.RequesterID,
		PickupAddress:            req.PickupAddress,
		DestinationAddress:       req.DestinationAddress,
		RequestedTime:            req.RequestedTime,
		SpecialNeeds:             req.SpecialNeeds,
		Status:                   domain.RideStatusPending,
		DistanceKm:               est.DistanceKm,
		EstimatedDurationMinutes: est.DurationMinutes,
		CreatedAt:                c.now(),
		Version:                  1,
	}

	if err := c.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

func (c *DispatchCoordinator) validateCreateRequest(req CreateRideRequest) error {
	if req.RequesterID == "" {
		return ErrInvalidRequesterID
	}
	if req.PickupAddress == "" || req.DestinationAddress == "" {
		return ErrInvalidAddress
	}
	if req.RequestedTime.IsZero() {
		return ErrInvalidRequestedTime
	}
	return nil
}

// AssignVolunteer assigns a volunteer to a pending ride. With an empty
// volunteerID the matching engine picks one; otherwise the named volunteer
// is validated and used. Exclusive per ride id: of two concurrent attempts
// exactly one succeeds, the other observes an invalid transition or a
// conflict.
func (c *DispatchCoordinator) AssignVolunteer(ctx context.Context, rideID, volunteerID string) (*domain.RideRequest, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	locked, err := c.locks.AcquireRideLock(ctx, rideID, rideLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, repository.ErrConcurrentModification
	}
	defer func() { _ = c.locks.ReleaseRideLock(ctx, rideID) }()

	ride, err := c.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	// Refuse early so a doomed assignment never spends route lookups.
	if !domain.CanApply(ride.Status, domain.EventAssign) {
		return nil, &domain.InvalidTransitionError{From: ride.Status, Event: domain.EventAssign}
	}

	var volunteer *domain.Volunteer
	if volunteerID == "" {
		volunteer, err = c.matcher.Match(ctx, ride)
		if err != nil {
			return nil, err
		}
	} else {
		volunteer, err = c.volunteerRepo.GetByID(ctx, volunteerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUnknownVolunteer
			}
			return nil, err
		}
	}

	if err := domain.ApplyEvent(ride, domain.EventAssign, volunteer.ID, c.now()); err != nil {
		return nil, err
	}

	if err := c.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	if c.notifier != nil {
		_ = c.notifier.NotifyVolunteerAssigned(ctx, ride, volunteer)
	}

	return ride, nil
}

// StartRide marks an assigned ride as in progress.
func (c *DispatchCoordinator) StartRide(ctx context.Context, rideID string) (*domain.RideRequest, error) {
	return c.transition(ctx, rideID, domain.EventStart)
}

// CompleteRide marks a ride as completed and stamps the completion time.
func (c *DispatchCoordinator) CompleteRide(ctx context.Context, rideID string) (*domain.RideRequest, error) {
	return c.transition(ctx, rideID, domain.EventComplete)
}

// CancelRide cancels a ride in any non-terminal state.
func (c *DispatchCoordinator) CancelRide(ctx context.Context, rideID string) (*domain.RideRequest, error) {
	ride, err := c.transition(ctx, rideID, domain.EventCancel)
	if err != nil {
		return nil, err
	}

	if c.notifier != nil {
		_ = c.notifier.NotifyRideCancelled(ctx, ride)
	}

	return ride, nil
}

// transition runs a locked read-modify-write applying a single lifecycle
// event.
func (c *DispatchCoordinator) transition(ctx context.Context, rideID string, event domain.RideEvent) (*domain.RideRequest, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	locked, err := c.locks.AcquireRideLock(ctx, rideID, rideLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, repository.ErrConcurrentModification
	}
	defer func() { _ = c.locks.ReleaseRideLock(ctx, rideID) }()

	ride, err := c.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if err := domain.ApplyEvent(ride, event, "", c.now()); err != nil {
		return nil, err
	}

	if err := c.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

// UnknownVolunteerName is the placeholder shown when an assigned volunteer
// record has since been deleted.
const UnknownVolunteerName = "unknown volunteer"

// RideView is a ride request with its assigned volunteer resolved for
// display. A dangling volunteer reference resolves to the placeholder, not
// an error.
type RideView struct {
	Ride          *domain.RideRequest
	VolunteerName string
}

// GetRide retrieves a ride and resolves its assigned volunteer.
func (c *DispatchCoordinator) GetRide(ctx context.Context, rideID string) (*RideView, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := c.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	view := &RideView{Ride: ride}
	if ride.Assigned() {
		volunteer, err := c.volunteerRepo.GetByID(ctx, ride.AssignedVolunteerID)
		switch {
		case err == nil:
			view.VolunteerName = volunteer.Name
		case errors.Is(err, repository.ErrNotFound):
			view.VolunteerName = UnknownVolunteerName
		default:
			return nil, err
		}
	}

	return view, nil
}

// ListRides retrieves ride requests, optionally filtered by status.
func (c *DispatchCoordinator) ListRides(ctx context.Context, status domain.RideStatus) ([]*domain.RideRequest, error) {
	return c.rideRepo.GetAll(ctx, status)
}

// DeleteRide removes a ride request record.
func (c *DispatchCoordinator) DeleteRide(ctx context.Context, rideID string) error {
	if rideID == "" {
		return ErrInvalidRideID
	}
	return c.rideRepo.Delete(ctx, rideID)
}
