package models

import "strings"

// DefaultRole is assigned at creation when the draft carries no role. It is
// also the baseline for the role-change notification rule: only promotions
// away from this role are notification-worthy.
const DefaultRole = "customer"

// AdminRole marks accounts that receive administrative notifications.
const AdminRole = "admin"

// Account is a marketplace user account. The identifier is externally
// assigned and immutable for the account's lifetime. Email and username are
// unique across all accounts, soft-deleted ones included.
type Account struct {
	ID       string
	Email    string
	Username string
	Fullname string
	Role     string
	Deleted  bool
}

// IsAdmin reports whether the account receives administrative notifications.
// Role comparison is case-insensitive.
func (a Account) IsAdmin() bool {
	return strings.EqualFold(a.Role, AdminRole)
}

// HasDefaultRole reports whether the account still carries the default role,
// case-insensitively.
func (a Account) HasDefaultRole() bool {
	return strings.EqualFold(a.Role, DefaultRole)
}

// Patch carries a partial update. Nil fields are absent and leave the
// current value untouched; there is no way to clear a field through update.
type Patch struct {
	Email    *string
	Username *string
	Fullname *string
	Role     *string
}

// IsZero reports whether the patch carries no fields at all.
func (p Patch) IsZero() bool {
	return p.Email == nil && p.Username == nil && p.Fullname == nil && p.Role == nil
}

// Apply copies the present patch fields onto the account.
func (p Patch) Apply(a *Account) {
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Username != nil {
		a.Username = *p.Username
	}
	if p.Fullname != nil {
		a.Fullname = *p.Fullname
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
}

// ListFilter narrows account listings. Substring filters are case-sensitive
// contains matches; Role matches case-insensitively. IncludeDeleted widens
// the listing to soft-deleted accounts; the zero value lists active only.
type ListFilter struct {
	FullnameContains string
	UsernameContains string
	EmailContains    string
	Role             string
	IncludeDeleted   bool
}

// Matches reports whether the account passes every provided filter.
func (f ListFilter) Matches(a Account) bool {
	if !f.IncludeDeleted && a.Deleted {
		return false
	}
	if f.FullnameContains != "" && !strings.Contains(a.Fullname, f.FullnameContains) {
		return false
	}
	if f.UsernameContains != "" && !strings.Contains(a.Username, f.UsernameContains) {
		return false
	}
	if f.EmailContains != "" && !strings.Contains(a.Email, f.EmailContains) {
		return false
	}
	if f.Role != "" && !strings.EqualFold(a.Role, f.Role) {
		return false
	}
	return true
}
