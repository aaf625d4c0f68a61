// Package store persists accounts. Implementations enforce id, email and
// username uniqueness atomically on Create so concurrent writers racing past
// the registry's checks are still caught here and reported as conflicts.
package store

import (
	"context"

	"usersvc/internal/account/models"
)

// AccountStore is the abstract repository the lifecycle service depends on.
// Lookups are case-sensitive exact matches; normalization is the caller's
// concern. Errors are sentinel-based: ErrNotFound for missing rows,
// ConflictError (wrapping ErrConflict) for uniqueness violations.
type AccountStore interface {
	Create(ctx context.Context, account models.Account) error
	FindByID(ctx context.Context, id string) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Account, error)
	// Update replaces the stored row identified by account.ID.
	Update(ctx context.Context, account models.Account) error
	// Delete removes the row permanently.
	Delete(ctx context.Context, id string) error
}
