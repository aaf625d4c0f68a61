package address

import (
	"context"
	"errors"

	"usersvc/pkg/domerrors"
	"usersvc/pkg/platform/sentinel"
)

// Service is the ownership-scoped address CRUD.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListByOwner returns every address belonging to the account.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Address, error) {
	addresses, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "addresses could not be listed")
	}
	return addresses, nil
}

// Create stores a new address for its owner. An unknown owner surfaces as a
// bad request, matching the foreign key failure mode.
func (s *Service) Create(ctx context.Context, a Address) (Address, error) {
	created, err := s.store.Create(ctx, a)
	if errors.Is(err, sentinel.ErrConflict) {
		return Address{}, domerrors.New(domerrors.CodeBadRequest, "user id does not exist")
	}
	if err != nil {
		return Address{}, domerrors.Wrap(err, domerrors.CodeInternal, "address could not be created")
	}
	return created, nil
}

// Get returns the address only when it belongs to the owner.
func (s *Service) Get(ctx context.Context, ownerID string, id int) (Address, error) {
	a, err := s.store.FindByIDAndOwner(ctx, id, ownerID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Address{}, domerrors.New(domerrors.CodeNotFound, "address not found")
	}
	if err != nil {
		return Address{}, domerrors.Wrap(err, domerrors.CodeInternal, "address lookup failed")
	}
	return a, nil
}

// Update applies the non-nil patch fields. A patch arriving under a
// different owner than the stored one is an ownership mismatch.
func (s *Service) Update(ctx context.Context, ownerID string, id int, patch Patch) (Address, error) {
	a, err := s.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Address{}, domerrors.New(domerrors.CodeNotFound, "address not found")
	}
	if err != nil {
		return Address{}, domerrors.Wrap(err, domerrors.CodeInternal, "address lookup failed")
	}

	if a.OwnerID != ownerID {
		return Address{}, domerrors.New(domerrors.CodeOwnership, "user id does not match")
	}

	patch.apply(&a)
	if err := s.store.Update(ctx, a); err != nil {
		return Address{}, domerrors.Wrap(err, domerrors.CodeInternal, "address could not be updated")
	}
	return a, nil
}

// Delete removes the address when it belongs to the owner.
func (s *Service) Delete(ctx context.Context, ownerID string, id int) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domerrors.Wrap(err, domerrors.CodeInternal, "address could not be deleted")
	}
	return nil
}
