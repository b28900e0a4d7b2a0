package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// GoogleMapsProvider implements RouteProvider using the Google Maps
// Directions API in driving mode.
type GoogleMapsProvider struct {
	client  *maps.Client
	timeout time.Duration
}

var _ RouteProvider = (*GoogleMapsProvider)(nil)

// NewGoogleMapsProvider creates a provider with the given API key. timeout
// caps each Directions call in addition to any caller deadline.
func NewGoogleMapsProvider(apiKey string, timeout time.Duration) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleMapsProvider{client: client, timeout: timeout}, nil
}

// Estimate looks up the first driving route between origin and destination.
func (p *GoogleMapsProvider) Estimate(ctx context.Context, origin, destination string) (Estimate, error) {
	if origin == "" || destination == "" {
		return Estimate{}, ErrRouteUnavailable
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := p.client.Directions(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Estimate{}, ErrUpstreamTimeout
		}
		return Estimate{}, fmt.Errorf("%w: %v", ErrRouteUnavailable, err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Estimate{}, ErrRouteUnavailable
	}

	var meters int
	var duration time.Duration
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
		duration += leg.Duration
	}

	return Estimate{
		DistanceKm:      float64(meters) / 1000.0,
		DurationMinutes: duration.Minutes(),
	}, nil
}
