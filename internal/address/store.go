package address

import (
	"context"
	"sync"

	"usersvc/pkg/platform/sentinel"
)

// Store persists addresses. Create fails with ErrConflict when the owner
// does not exist (foreign key in postgres, explicit check in memory).
type Store interface {
	Create(ctx context.Context, a Address) (Address, error)
	FindByOwner(ctx context.Context, ownerID string) ([]Address, error)
	FindByIDAndOwner(ctx context.Context, id int, ownerID string) (Address, error)
	FindByID(ctx context.Context, id int) (Address, error)
	Update(ctx context.Context, a Address) error
	Delete(ctx context.Context, id int) error
}

// OwnerCheck reports whether an account id exists, deleted or not. The
// in-memory store uses it to emulate the foreign key.
type OwnerCheck func(ctx context.Context, ownerID string) (bool, error)

// InMemory is the test and development store.
type InMemory struct {
	mu        sync.RWMutex
	addresses map[int]Address
	nextID    int
	ownerOK   OwnerCheck
}

func NewInMemory(ownerOK OwnerCheck) *InMemory {
	return &InMemory{addresses: make(map[int]Address), nextID: 1, ownerOK: ownerOK}
}

func (s *InMemory) Create(ctx context.Context, a Address) (Address, error) {
	if s.ownerOK != nil {
		ok, err := s.ownerOK(ctx, a.OwnerID)
		if err != nil {
			return Address{}, err
		}
		if !ok {
			return Address{}, sentinel.ErrConflict
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID
	s.nextID++
	s.addresses[a.ID] = a
	return a, nil
}

func (s *InMemory) FindByOwner(_ context.Context, ownerID string) ([]Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []Address
	for id := 1; id < s.nextID; id++ {
		if a, ok := s.addresses[id]; ok && a.OwnerID == ownerID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *InMemory) FindByIDAndOwner(_ context.Context, id int, ownerID string) (Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.addresses[id]; ok && a.OwnerID == ownerID {
		return a, nil
	}
	return Address{}, sentinel.ErrNotFound
}

func (s *InMemory) FindByID(_ context.Context, id int) (Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.addresses[id]; ok {
		return a, nil
	}
	return Address{}, sentinel.ErrNotFound
}

func (s *InMemory) Update(_ context.Context, a Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.addresses[a.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.addresses[a.ID] = a
	return nil
}

func (s *InMemory) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.addresses[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.addresses, id)
	return nil
}
