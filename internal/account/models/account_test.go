package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleHelpers(t *testing.T) {
	assert.True(t, Account{Role: "admin"}.IsAdmin())
	assert.True(t, Account{Role: "ADMIN"}.IsAdmin())
	assert.False(t, Account{Role: "customer"}.IsAdmin())

	assert.True(t, Account{Role: "customer"}.HasDefaultRole())
	assert.True(t, Account{Role: "Customer"}.HasDefaultRole())
	assert.False(t, Account{Role: "manager"}.HasDefaultRole())
}

func TestPatchApply(t *testing.T) {
	account := Account{
		ID:       "u1",
		Email:    "u1@example.com",
		Username: "user-u1",
		Fullname: "User One",
		Role:     DefaultRole,
	}

	t.Run("zero patch changes nothing", func(t *testing.T) {
		patched := account
		Patch{}.Apply(&patched)
		assert.Equal(t, account, patched)
		assert.True(t, Patch{}.IsZero())
	})

	t.Run("present fields overwrite, absent fields survive", func(t *testing.T) {
		fullname := "Renamed"
		role := "admin"
		patch := Patch{Fullname: &fullname, Role: &role}
		assert.False(t, patch.IsZero())

		patched := account
		patch.Apply(&patched)
		assert.Equal(t, "Renamed", patched.Fullname)
		assert.Equal(t, "admin", patched.Role)
		assert.Equal(t, "u1@example.com", patched.Email)
		assert.Equal(t, "user-u1", patched.Username)
	})

	t.Run("an empty string is a value, not an absence", func(t *testing.T) {
		empty := ""
		patched := account
		Patch{Fullname: &empty}.Apply(&patched)
		assert.Equal(t, "", patched.Fullname)
	})
}

func TestListFilterMatches(t *testing.T) {
	active := Account{ID: "a", Email: "alice@example.com", Username: "alice", Fullname: "Alice Smith", Role: "admin"}
	deleted := Account{ID: "b", Email: "bob@example.com", Username: "bob", Fullname: "Bob Jones", Role: "customer", Deleted: true}

	cases := []struct {
		name    string
		filter  ListFilter
		account Account
		want    bool
	}{
		{"zero filter matches active", ListFilter{}, active, true},
		{"zero filter excludes deleted", ListFilter{}, deleted, false},
		{"include deleted widens", ListFilter{IncludeDeleted: true}, deleted, true},
		{"fullname contains", ListFilter{FullnameContains: "Smith"}, active, true},
		{"fullname contains is case-sensitive", ListFilter{FullnameContains: "smith"}, active, false},
		{"role matches case-insensitively", ListFilter{Role: "ADMIN"}, active, true},
		{"role mismatch", ListFilter{Role: "customer"}, active, false},
		{"all filters must pass", ListFilter{FullnameContains: "Alice", Role: "customer"}, active, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(tc.account))
		})
	}
}
