// Package service owns the account lifecycle state machine: Active,
// SoftDeleted and Destroyed. Every mutating operation consults the identity
// registry first, persists, and only then raises a lifecycle event. Events
// are handed to observers on a detached context and never awaited, so the
// mutation path stays free of delivery concerns.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"usersvc/internal/account/models"
	"usersvc/internal/account/store"
	"usersvc/internal/platform/metrics"
	"usersvc/pkg/domerrors"
	"usersvc/pkg/platform/sentinel"
)

// Observer receives lifecycle events after the mutation committed. Publish
// must not block the caller for long and must never fail the operation;
// observers own their error handling.
type Observer interface {
	Publish(ctx context.Context, event models.Event)
}

// AccountService is the lifecycle manager. It holds no mutable state of its
// own; shared state is confined to the backing store.
type AccountService struct {
	accounts  store.AccountStore
	registry  *IdentityRegistry
	observers []Observer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer

	// queue feeds the single dispatch goroutine, so observers see events in
	// the order the mutations committed. It is unbounded: raising an event
	// never blocks the mutation path, however slow an observer is.
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []raisedEvent
	closed bool
}

type raisedEvent struct {
	ctx   context.Context
	event models.Event
}

// Option configures an AccountService.
type Option func(*AccountService)

// WithObserver registers a lifecycle event observer. Observers are invoked
// in registration order on a detached context.
func WithObserver(o Observer) Option {
	return func(s *AccountService) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithMetrics attaches operation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *AccountService) { s.metrics = m }
}

func NewAccountService(accounts store.AccountStore, logger *slog.Logger, opts ...Option) *AccountService {
	s := &AccountService{
		accounts: accounts,
		registry: NewIdentityRegistry(accounts),
		logger:   logger,
		tracer:   otel.Tracer("usersvc/internal/account/service"),
	}
	s.cond = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	go s.dispatch()
	return s
}

// Close stops event dispatch. Events already raised are still delivered.
func (s *AccountService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Signal()
}

// Registry exposes the identity registry for read-only collaborators.
func (s *AccountService) Registry() *IdentityRegistry {
	return s.registry
}

// Attach registers an observer after construction, for observers that need
// the service itself (the notification dispatcher reads the admin directory
// through it). Startup wiring only; not safe once requests are flowing.
func (s *AccountService) Attach(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// Create registers a new account in the Active state. The draft role
// defaults to the default role when empty. Fails with a conflict naming the
// first colliding field (id before email before username), or with an
// internal error when the durable write fails for any other reason.
func (s *AccountService) Create(ctx context.Context, draft models.Account) (models.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.create")
	defer span.End()

	if err := s.registry.UniqueForCreate(ctx, draft.ID, draft.Email, draft.Username); err != nil {
		return models.Account{}, err
	}

	if draft.Role == "" {
		draft.Role = models.DefaultRole
	}
	draft.Deleted = false

	if err := s.accounts.Create(ctx, draft); err != nil {
		if field := sentinel.ConflictField(err); field != "" {
			return models.Account{}, conflictFor(field)
		}
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Account{}, domerrors.Conflict("id", "account already exists")
		}
		return models.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "account could not be created")
	}

	s.metrics.IncAccountsCreated()
	s.raise(ctx, models.AccountCreated{Account: draft})
	return draft, nil
}

// Get returns an active account. Soft-deleted accounts are invisible to
// ordinary reads and report Gone rather than NotFound.
func (s *AccountService) Get(ctx context.Context, id string) (models.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.get")
	defer span.End()

	account, err := s.find(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	if account.Deleted {
		return models.Account{}, domerrors.New(domerrors.CodeGone, "account is deleted")
	}
	return account, nil
}

// List returns accounts matching every provided filter.
func (s *AccountService) List(ctx context.Context, filter models.ListFilter) ([]models.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.list")
	defer span.End()

	accounts, err := s.accounts.List(ctx, filter)
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "accounts could not be listed")
	}
	return accounts, nil
}

// Update applies the non-nil patch fields. Updates are permitted on
// soft-deleted accounts; uniqueness is verified for every present field
// before anything is applied, so a conflict aborts the whole patch. A
// RoleChanged event is raised only when the patch moves the role away from
// the default role.
func (s *AccountService) Update(ctx context.Context, id string, patch models.Patch) (models.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.update")
	defer span.End()

	account, err := s.find(ctx, id)
	if err != nil {
		return models.Account{}, err
	}

	if err := s.registry.UniqueForUpdate(ctx, id, patch.Email, patch.Username); err != nil {
		return models.Account{}, err
	}

	oldRole := account.Role
	patch.Apply(&account)

	if err := s.accounts.Update(ctx, account); err != nil {
		if field := sentinel.ConflictField(err); field != "" {
			return models.Account{}, conflictFor(field)
		}
		return models.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "account could not be updated")
	}

	if patch.Role != nil && promotedFromDefault(oldRole, account.Role) {
		s.raise(ctx, models.RoleChanged{ID: id, OldRole: oldRole, NewRole: account.Role})
	}
	return account, nil
}

// SoftDelete marks the account deleted. Deleting an already deleted account
// is an error, not a no-op.
func (s *AccountService) SoftDelete(ctx context.Context, id string) (models.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.soft_delete")
	defer span.End()

	account, err := s.find(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	if account.Deleted {
		return models.Account{}, domerrors.New(domerrors.CodeAlreadyInState, "account is already deleted")
	}

	account.Deleted = true
	if err := s.accounts.Update(ctx, account); err != nil {
		return models.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "account could not be deleted")
	}

	s.metrics.IncAccountsSoftDeleted()
	s.raise(ctx, models.AccountSoftDeleted{ID: id})
	return account, nil
}

// Restore brings a soft-deleted account back to Active. Restoring an
// already-active account is an idempotent no-op: no write, no event.
func (s *AccountService) Restore(ctx context.Context, id string) (models.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.restore")
	defer span.End()

	account, err := s.find(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	if !account.Deleted {
		return account, nil
	}

	account.Deleted = false
	if err := s.accounts.Update(ctx, account); err != nil {
		return models.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "account could not be restored")
	}

	s.metrics.IncAccountsRestored()
	s.raise(ctx, models.AccountRestored{ID: id})
	return account, nil
}

// Destroy removes the account permanently, from either Active or
// SoftDeleted. Destroyed is terminal: afterwards the id reports NotFound
// everywhere, though its email and username become reusable.
func (s *AccountService) Destroy(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "account.destroy")
	defer span.End()

	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "account not found")
		}
		return domerrors.Wrap(err, domerrors.CodeInternal, "account could not be destroyed")
	}

	s.metrics.IncAccountsDestroyed()
	s.raise(ctx, models.AccountDestroyed{ID: id})
	return nil
}

// AdminEmails projects the active administrator accounts to their email
// addresses, preserving store order. Always reads the live registry state.
func (s *AccountService) AdminEmails(ctx context.Context) ([]string, error) {
	admins, err := s.List(ctx, models.ListFilter{Role: models.AdminRole})
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(admins))
	for _, admin := range admins {
		emails = append(emails, admin.Email)
	}
	return emails, nil
}

// find fetches an account regardless of soft-delete state.
func (s *AccountService) find(ctx context.Context, id string) (models.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Account{}, domerrors.New(domerrors.CodeNotFound, "account not found")
	}
	if err != nil {
		return models.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "identity lookup failed")
	}
	return account, nil
}

// raise enqueues the event on a context that survives the request. The
// mutation returns as soon as the event is queued; dispatch and delivery are
// never awaited.
func (s *AccountService) raise(ctx context.Context, event models.Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, raisedEvent{ctx: context.WithoutCancel(ctx), event: event})
	s.mu.Unlock()
	s.cond.Signal()
}

func (s *AccountService) dispatch() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, re := range batch {
			for _, o := range s.observers {
				o.Publish(re.ctx, re.event)
			}
		}
	}
}

func promotedFromDefault(oldRole, newRole string) bool {
	return strings.EqualFold(oldRole, models.DefaultRole) &&
		!strings.EqualFold(newRole, models.DefaultRole)
}

func conflictFor(field string) *domerrors.Error {
	switch field {
	case "email":
		return domerrors.Conflict("email", "email already in use")
	case "username":
		return domerrors.Conflict("username", "username already in use")
	default:
		return domerrors.Conflict("id", "account already exists")
	}
}
