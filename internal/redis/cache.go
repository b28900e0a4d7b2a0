package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"careride/internal/geo"
)

// RouteCacheTTL bounds staleness of cached route estimates. Road travel
// times drift with traffic, so entries expire rather than being invalidated.
const RouteCacheTTL = 10 * time.Minute

const routeCachePrefix = "cache:route:"

// RouteCacheStore caches route estimates in Redis keyed by origin and
// destination.
type RouteCacheStore struct {
	client *redis.Client
}

// NewRouteCacheStore creates a new RouteCacheStore.
func NewRouteCacheStore(client *redis.Client) *RouteCacheStore {
	return &RouteCacheStore{client: client}
}

// GetEstimate retrieves a cached estimate. A cache miss returns (nil, nil).
func (s *RouteCacheStore) GetEstimate(ctx context.Context, origin, destination string) (*geo.Estimate, error) {
	key := routeCachePrefix + origin + "|" + destination
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var est geo.Estimate
	if err := json.Unmarshal(data, &est); err != nil {
		return nil, err
	}
	return &est, nil
}

// SetEstimate stores an estimate with the cache TTL.
func (s *RouteCacheStore) SetEstimate(ctx context.Context, origin, destination string, est geo.Estimate) error {
	key := routeCachePrefix + origin + "|" + destination
	data, err := json.Marshal(est)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, RouteCacheTTL).Err()
}

// CachedRouteProvider decorates a geo.RouteProvider with the Redis estimate
// cache. Cache failures fall through to the inner provider; a slow cache is
// never allowed to make routing less available.
type CachedRouteProvider struct {
	cache *RouteCacheStore
	next  geo.RouteProvider
}

var _ geo.RouteProvider = (*CachedRouteProvider)(nil)

// NewCachedRouteProvider wraps next with the given cache store.
func NewCachedRouteProvider(cache *RouteCacheStore, next geo.RouteProvider) *CachedRouteProvider {
	return &CachedRouteProvider{cache: cache, next: next}
}

// Estimate serves from cache when possible, otherwise asks the inner
// provider and caches the result.
func (p *CachedRouteProvider) Estimate(ctx context.Context, origin, destination string) (geo.Estimate, error) {
	if cached, err := p.cache.GetEstimate(ctx, origin, destination); err == nil && cached != nil {
		return *cached, nil
	}

	est, err := p.next.Estimate(ctx, origin, destination)
	if err != nil {
		return geo.Estimate{}, err
	}

	_ = p.cache.SetEstimate(ctx, origin, destination, est)
	return est, nil
}
