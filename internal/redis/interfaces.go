package redis

import (
	"context"
	"time"
)

// RideLockStoreInterface defines the interface for per-ride distributed
// locking, allowing in-memory implementations in tests.
type RideLockStoreInterface interface {
	AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error)
	ReleaseRideLock(ctx context.Context, rideID string) error
}

// Ensure concrete types implement interfaces.
var _ RideLockStoreInterface = (*LockStore)(nil)
