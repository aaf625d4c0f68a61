package models

// Lifecycle events capture committed state transitions. The service raises
// exactly one per successful mutating operation, after the write is durable,
// and hands it to registered observers. Events are pure data; observers
// decide whether anything (a notification, a Kafka record) comes of them.

// Event is implemented by every lifecycle event variant.
type Event interface {
	// Kind returns the stable event name used in logs and wire envelopes.
	Kind() string
}

// AccountCreated is raised when a new account enters the Active state.
type AccountCreated struct {
	Account Account
}

// AccountSoftDeleted is raised when an account is marked deleted.
type AccountSoftDeleted struct {
	ID string
}

// AccountRestored is raised when a soft-deleted account becomes active again.
type AccountRestored struct {
	ID string
}

// AccountDestroyed is raised when an account is permanently removed.
type AccountDestroyed struct {
	ID string
}

// RoleChanged is raised when an update moves an account's role away from the
// default role. The service applies the suppression rule; observers can
// treat every RoleChanged as notification-worthy.
type RoleChanged struct {
	ID      string
	OldRole string
	NewRole string
}

func (AccountCreated) Kind() string     { return "account_created" }
func (AccountSoftDeleted) Kind() string { return "account_soft_deleted" }
func (AccountRestored) Kind() string    { return "account_restored" }
func (AccountDestroyed) Kind() string   { return "account_destroyed" }
func (RoleChanged) Kind() string        { return "account_role_changed" }
