package store

import (
	"context"
	"sync"

	"usersvc/internal/account/models"
	"usersvc/pkg/platform/sentinel"
)

// InMemory keeps accounts in a map guarded by a mutex. Uniqueness checks run
// inside the lock so check-and-write is atomic, mirroring what the unique
// indexes guarantee in postgres. Intended for tests and local development.
type InMemory struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	// insertion order, so listings are stable like a keyset-ordered table
	order []string
}

func NewInMemory() *InMemory {
	return &InMemory{accounts: make(map[string]models.Account)}
}

func (s *InMemory) Create(_ context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; ok {
		return sentinel.Conflict("id")
	}
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return sentinel.Conflict("email")
		}
		if existing.Username == account.Username {
			return sentinel.Conflict("username")
		}
	}

	s.accounts[account.ID] = account
	s.order = append(s.order, account.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if account, ok := s.accounts[id]; ok {
		return account, nil
	}
	return models.Account{}, sentinel.ErrNotFound
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return models.Account{}, sentinel.ErrNotFound
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return models.Account{}, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context, filter models.ListFilter) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		account, ok := s.accounts[id]
		if !ok {
			continue
		}
		if filter.Matches(account) {
			result = append(result, account)
		}
	}
	return result, nil
}

func (s *InMemory) Update(_ context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return sentinel.ErrNotFound
	}
	for id, existing := range s.accounts {
		if id == account.ID {
			continue
		}
		if existing.Email == account.Email {
			return sentinel.Conflict("email")
		}
		if existing.Username == account.Username {
			return sentinel.Conflict("username")
		}
	}

	s.accounts[account.ID] = account
	return nil
}

func (s *InMemory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.accounts, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
