package payment

import (
	"context"
	"sync"

	"usersvc/pkg/platform/sentinel"
)

// Store persists payment methods.
type Store interface {
	Create(ctx context.Context, m Method) (Method, error)
	FindByOwner(ctx context.Context, ownerID string) ([]Method, error)
	FindByID(ctx context.Context, id int) (Method, error)
	FindByIDAndOwner(ctx context.Context, id int, ownerID string) (Method, error)
	Update(ctx context.Context, m Method) error
	Delete(ctx context.Context, id int) error
}

// InMemory is the test and development store.
type InMemory struct {
	mu      sync.RWMutex
	methods map[int]Method
	nextID  int
}

func NewInMemory() *InMemory {
	return &InMemory{methods: make(map[int]Method), nextID: 1}
}

func (s *InMemory) Create(_ context.Context, m Method) (Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextID
	s.nextID++
	s.methods[m.ID] = m
	return m, nil
}

func (s *InMemory) FindByOwner(_ context.Context, ownerID string) ([]Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []Method
	for id := 1; id < s.nextID; id++ {
		if m, ok := s.methods[id]; ok && m.OwnerID == ownerID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *InMemory) FindByID(_ context.Context, id int) (Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.methods[id]; ok {
		return m, nil
	}
	return Method{}, sentinel.ErrNotFound
}

func (s *InMemory) FindByIDAndOwner(_ context.Context, id int, ownerID string) (Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.methods[id]; ok && m.OwnerID == ownerID {
		return m, nil
	}
	return Method{}, sentinel.ErrNotFound
}

func (s *InMemory) Update(_ context.Context, m Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.methods[m.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.methods[m.ID] = m
	return nil
}

func (s *InMemory) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.methods[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.methods, id)
	return nil
}
