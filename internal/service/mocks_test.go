package service

import (
	"context"
	"sync"
	"time"

	"careride/internal/domain"
	"careride/internal/repository"
)

// mockUserRepo is an in-memory UserRepository.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockUserRepo) UpdateContact(ctx context.Context, id, phone, address string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.Phone = phone
	user.Address = address
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// mockVolunteerRepo is an in-memory VolunteerRepository.
type mockVolunteerRepo struct {
	mu         sync.Mutex
	volunteers map[string]*domain.Volunteer
}

func newMockVolunteerRepo() *mockVolunteerRepo {
	return &mockVolunteerRepo{volunteers: make(map[string]*domain.Volunteer)}
}

func (m *mockVolunteerRepo) Create(ctx context.Context, volunteer *domain.Volunteer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *volunteer
	m.volunteers[volunteer.ID] = &copied
	return nil
}

func (m *mockVolunteerRepo) GetByID(ctx context.Context, id string) (*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	volunteer, ok := m.volunteers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *volunteer
	return &copied, nil
}

func (m *mockVolunteerRepo) GetAll(ctx context.Context) ([]*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Volunteer, 0, len(m.volunteers))
	for _, volunteer := range m.volunteers {
		copied := *volunteer
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockVolunteerRepo) Update(ctx context.Context, volunteer *domain.Volunteer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.volunteers[volunteer.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *volunteer
	m.volunteers[volunteer.ID] = &copied
	return nil
}

func (m *mockVolunteerRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.volunteers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.volunteers, id)
	return nil
}

// mockRideRepo is an in-memory RideRepository with the same version-checked
// update semantics as the postgres implementation.
type mockRideRepo struct {
	mu    sync.Mutex
	rides map[string]*domain.RideRequest
}

func newMockRideRepo() *mockRideRepo {
	return &mockRideRepo{rides: make(map[string]*domain.RideRequest)}
}

func (m *mockRideRepo) Create(ctx context.Context, ride *domain.RideRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *ride
	m.rides[ride.ID] = &copied
	return nil
}

func (m *mockRideRepo) GetByID(ctx context.Context, id string) (*domain.RideRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *ride
	return &copied, nil
}

func (m *mockRideRepo) GetAll(ctx context.Context, status domain.RideStatus) ([]*domain.RideRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.RideRequest, 0, len(m.rides))
	for _, ride := range m.rides {
		if status != "" && ride.Status != status {
			continue
		}
		copied := *ride
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockRideRepo) Update(ctx context.Context, ride *domain.RideRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.rides[ride.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Version != ride.Version {
		return repository.ErrConcurrentModification
	}
	copied := *ride
	copied.Version++
	m.rides[ride.ID] = &copied
	ride.Version++
	return nil
}

func (m *mockRideRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rides, id)
	return nil
}

// mockLockStore is an in-memory lock store with SetNX semantics.
type mockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool
}

func newMockLockStore() *mockLockStore {
	return &mockLockStore{locks: make(map[string]bool)}
}

func (m *mockLockStore) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[rideID] {
		return false, nil
	}
	m.locks[rideID] = true
	return true, nil
}

func (m *mockLockStore) ReleaseRideLock(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, rideID)
	return nil
}
