// Package geo abstracts route distance/duration estimation behind a
// provider interface so the dispatch core never depends on a concrete
// routing backend.
package geo

import (
	"context"
	"errors"
)

// Estimate is the result of a route lookup between two addresses.
type Estimate struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
}

var (
	// ErrRouteUnavailable is returned when no route can be estimated
	// between the given addresses.
	ErrRouteUnavailable = errors.New("route unavailable")

	// ErrUpstreamTimeout is returned when the routing backend did not
	// answer within the caller's deadline.
	ErrUpstreamTimeout = errors.New("route provider timed out")
)

// RouteProvider estimates driving distance and duration between two
// addresses. Implementations must return non-negative finite values and
// honor ctx cancellation.
type RouteProvider interface {
	Estimate(ctx context.Context, origin, destination string) (Estimate, error)
}
