package service

import (
	"context"
	"errors"

	"usersvc/internal/account/models"
	"usersvc/internal/account/store"
	"usersvc/pkg/domerrors"
	"usersvc/pkg/platform/sentinel"
)

// IdentityRegistry enforces global uniqueness of account id, email and
// username over the abstract store. Lookups are case-sensitive exact matches
// and no normalization happens here; trimming or casing input is the
// caller's responsibility by design. Soft-deleted accounts still reserve
// their email and username.
type IdentityRegistry struct {
	accounts store.AccountStore
}

func NewIdentityRegistry(accounts store.AccountStore) *IdentityRegistry {
	return &IdentityRegistry{accounts: accounts}
}

// Exists reports whether an account with the given id exists, deleted or not.
func (r *IdentityRegistry) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.accounts.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindByEmail returns the account holding the email, if any.
func (r *IdentityRegistry) FindByEmail(ctx context.Context, email string) (models.Account, bool, error) {
	account, err := r.accounts.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Account{}, false, nil
	}
	if err != nil {
		return models.Account{}, false, err
	}
	return account, true, nil
}

// FindByUsername returns the account holding the username, if any.
func (r *IdentityRegistry) FindByUsername(ctx context.Context, username string) (models.Account, bool, error) {
	account, err := r.accounts.FindByUsername(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Account{}, false, nil
	}
	if err != nil {
		return models.Account{}, false, err
	}
	return account, true, nil
}

// UniqueForCreate checks id, then email, then username, in that order, and
// reports the first conflicting field so callers can produce a precise error.
func (r *IdentityRegistry) UniqueForCreate(ctx context.Context, id, email, username string) error {
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return domerrors.Wrap(err, domerrors.CodeInternal, "identity lookup failed")
	}
	if exists {
		return domerrors.Conflict("id", "account already exists")
	}

	if email != "" {
		if _, taken, err := r.FindByEmail(ctx, email); err != nil {
			return domerrors.Wrap(err, domerrors.CodeInternal, "identity lookup failed")
		} else if taken {
			return domerrors.Conflict("email", "email already in use")
		}
	}

	if username != "" {
		if _, taken, err := r.FindByUsername(ctx, username); err != nil {
			return domerrors.Wrap(err, domerrors.CodeInternal, "identity lookup failed")
		} else if taken {
			return domerrors.Conflict("username", "username already in use")
		}
	}

	return nil
}

// UniqueForUpdate runs the same checks for an update of the given account,
// evaluating only present fields and excluding the account's own current
// values: changing email to its current value is not a conflict.
func (r *IdentityRegistry) UniqueForUpdate(ctx context.Context, id string, email, username *string) error {
	if email != nil {
		holder, taken, err := r.FindByEmail(ctx, *email)
		if err != nil {
			return domerrors.Wrap(err, domerrors.CodeInternal, "identity lookup failed")
		}
		if taken && holder.ID != id {
			return domerrors.Conflict("email", "email already in use")
		}
	}

	if username != nil {
		holder, taken, err := r.FindByUsername(ctx, *username)
		if err != nil {
			return domerrors.Wrap(err, domerrors.CodeInternal, "identity lookup failed")
		}
		if taken && holder.ID != id {
			return domerrors.Conflict("username", "username already in use")
		}
	}

	return nil
}
