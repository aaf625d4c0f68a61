package payment

import (
	"context"
	"errors"

	"usersvc/pkg/domerrors"
	"usersvc/pkg/platform/sentinel"
)

// OwnerCheck reports whether an account id exists, deleted or not.
type OwnerCheck func(ctx context.Context, ownerID string) (bool, error)

// Service is the payment method CRUD. Lookups by id are not owner-scoped;
// only deletion requires the (owner, id) pair to match.
type Service struct {
	store   Store
	ownerOK OwnerCheck
}

func NewService(store Store, ownerOK OwnerCheck) *Service {
	return &Service{store: store, ownerOK: ownerOK}
}

// ListByOwner returns every payment method belonging to the account.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Method, error) {
	methods, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "payment methods could not be listed")
	}
	return methods, nil
}

// Get returns the payment method by id alone.
func (s *Service) Get(ctx context.Context, id int) (Method, error) {
	m, err := s.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Method{}, domerrors.New(domerrors.CodeNotFound, "payment method not found")
	}
	if err != nil {
		return Method{}, domerrors.Wrap(err, domerrors.CodeInternal, "payment method lookup failed")
	}
	return m, nil
}

// Create stores a new payment method after confirming the owner exists.
func (s *Service) Create(ctx context.Context, m Method) (Method, error) {
	if err := s.requireOwner(ctx, m.OwnerID); err != nil {
		return Method{}, err
	}

	created, err := s.store.Create(ctx, m)
	if err != nil {
		return Method{}, domerrors.Wrap(err, domerrors.CodeBadRequest, "payment method could not be created")
	}
	return created, nil
}

// Update applies the non-nil patch fields. The owner from the request path
// must exist; the stored owner is never changed.
func (s *Service) Update(ctx context.Context, ownerID string, id int, patch Patch) (Method, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return Method{}, err
	}
	if err := s.requireOwner(ctx, ownerID); err != nil {
		return Method{}, err
	}

	patch.apply(&m)
	if err := s.store.Update(ctx, m); err != nil {
		return Method{}, domerrors.Wrap(err, domerrors.CodeInternal, "payment method could not be updated")
	}
	return m, nil
}

// Delete removes the payment method when it belongs to the owner.
func (s *Service) Delete(ctx context.Context, ownerID string, id int) error {
	_, err := s.store.FindByIDAndOwner(ctx, id, ownerID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return domerrors.New(domerrors.CodeNotFound, "payment method or user not found")
	}
	if err != nil {
		return domerrors.Wrap(err, domerrors.CodeInternal, "payment method lookup failed")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domerrors.Wrap(err, domerrors.CodeInternal, "payment method could not be deleted")
	}
	return nil
}

func (s *Service) requireOwner(ctx context.Context, ownerID string) error {
	ok, err := s.ownerOK(ctx, ownerID)
	if err != nil {
		return domerrors.Wrap(err, domerrors.CodeInternal, "account lookup failed")
	}
	if !ok {
		return domerrors.New(domerrors.CodeNotFound, "user not found")
	}
	return nil
}
