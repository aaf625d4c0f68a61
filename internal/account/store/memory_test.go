package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"usersvc/internal/account/models"
	"usersvc/pkg/platform/sentinel"
)

type AccountStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *AccountStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestAccountStoreSuite(t *testing.T) {
	suite.Run(t, new(AccountStoreSuite))
}

func (s *AccountStoreSuite) newAccount(id string) models.Account {
	return models.Account{
		ID:       id,
		Email:    id + "@example.com",
		Username: "user-" + id,
		Fullname: "User " + id,
		Role:     models.DefaultRole,
	}
}

// TestCreationAndLookups verifies the store creates and retrieves accounts
// by every identity field.
func (s *AccountStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds account by ID", func() {
		account := s.newAccount("u1")
		s.Require().NoError(s.store.Create(s.ctx, account))

		found, err := s.store.FindByID(s.ctx, "u1")
		s.Require().NoError(err)
		s.Equal(account, found)
	})

	s.Run("finds account by email and username", func() {
		byEmail, err := s.store.FindByEmail(s.ctx, "u1@example.com")
		s.Require().NoError(err)
		s.Equal("u1", byEmail.ID)

		byUsername, err := s.store.FindByUsername(s.ctx, "user-u1")
		s.Require().NoError(err)
		s.Equal("u1", byUsername.ID)
	})

	s.Run("returns ErrNotFound for unknown identities", func() {
		_, err := s.store.FindByID(s.ctx, "missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByEmail(s.ctx, "missing@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByUsername(s.ctx, "missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestUniqueness verifies the conflict reports name the colliding field.
func (s *AccountStoreSuite) TestUniqueness() {
	s.Require().NoError(s.store.Create(s.ctx, s.newAccount("u1")))

	s.Run("rejects duplicate id", func() {
		dup := s.newAccount("u1")
		dup.Email = "other@example.com"
		dup.Username = "other"

		err := s.store.Create(s.ctx, dup)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
		s.Equal("id", sentinel.ConflictField(err))
	})

	s.Run("rejects duplicate email", func() {
		dup := s.newAccount("u2")
		dup.Email = "u1@example.com"

		err := s.store.Create(s.ctx, dup)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
		s.Equal("email", sentinel.ConflictField(err))
	})

	s.Run("rejects duplicate username", func() {
		dup := s.newAccount("u2")
		dup.Username = "user-u1"

		err := s.store.Create(s.ctx, dup)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
		s.Equal("username", sentinel.ConflictField(err))
	})

	s.Run("update rejects taking another account's email", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newAccount("u2")))

		account, err := s.store.FindByID(s.ctx, "u2")
		s.Require().NoError(err)
		account.Email = "u1@example.com"

		err = s.store.Update(s.ctx, account)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
		s.Equal("email", sentinel.ConflictField(err))
	})

	s.Run("update keeping own email is not a conflict", func() {
		account, err := s.store.FindByID(s.ctx, "u2")
		s.Require().NoError(err)
		account.Fullname = "Renamed"

		s.Require().NoError(s.store.Update(s.ctx, account))
	})
}

// TestListing verifies filters and the stable insertion order.
func (s *AccountStoreSuite) TestListing() {
	alice := models.Account{ID: "a", Email: "alice@example.com", Username: "alice", Fullname: "Alice Smith", Role: "admin"}
	bob := models.Account{ID: "b", Email: "bob@example.com", Username: "bob", Fullname: "Bob Jones", Role: models.DefaultRole}
	carol := models.Account{ID: "c", Email: "carol@example.com", Username: "carol", Fullname: "Carol Smith", Role: "ADMIN", Deleted: true}

	s.Require().NoError(s.store.Create(s.ctx, alice))
	s.Require().NoError(s.store.Create(s.ctx, bob))
	s.Require().NoError(s.store.Create(s.ctx, carol))

	s.Run("excludes deleted accounts by default", func() {
		accounts, err := s.store.List(s.ctx, models.ListFilter{})
		s.Require().NoError(err)
		s.Len(accounts, 2)
	})

	s.Run("includes deleted accounts on request", func() {
		accounts, err := s.store.List(s.ctx, models.ListFilter{IncludeDeleted: true})
		s.Require().NoError(err)
		s.Len(accounts, 3)
	})

	s.Run("preserves insertion order", func() {
		accounts, err := s.store.List(s.ctx, models.ListFilter{IncludeDeleted: true})
		s.Require().NoError(err)
		s.Equal([]string{"a", "b", "c"}, []string{accounts[0].ID, accounts[1].ID, accounts[2].ID})
	})

	s.Run("matches role case-insensitively", func() {
		accounts, err := s.store.List(s.ctx, models.ListFilter{Role: "admin", IncludeDeleted: true})
		s.Require().NoError(err)
		s.Len(accounts, 2)
	})

	s.Run("filters by fullname substring", func() {
		accounts, err := s.store.List(s.ctx, models.ListFilter{FullnameContains: "Smith"})
		s.Require().NoError(err)
		s.Require().Len(accounts, 1)
		s.Equal("a", accounts[0].ID)
	})
}

// TestDelete verifies removal frees the identity for reuse.
func (s *AccountStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Create(s.ctx, s.newAccount("u1")))
	s.Require().NoError(s.store.Delete(s.ctx, "u1"))

	s.Run("deleted account is gone", func() {
		_, err := s.store.FindByID(s.ctx, "u1")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("identity becomes reusable", func() {
		s.NoError(s.store.Create(s.ctx, s.newAccount("u1")))
	})

	s.Run("deleting twice reports ErrNotFound", func() {
		s.Require().NoError(s.store.Delete(s.ctx, "u1"))
		s.ErrorIs(s.store.Delete(s.ctx, "u1"), sentinel.ErrNotFound)
	})
}
