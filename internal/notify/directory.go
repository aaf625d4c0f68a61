package notify

import "context"

// Directory resolves the current administrator recipients. Implementations
// must not cache; the dispatcher expects the live registry state on every
// dispatch, in the order the registry returns it.
type Directory interface {
	AdminEmails(ctx context.Context) ([]string, error)
}
