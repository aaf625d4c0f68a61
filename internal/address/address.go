// Package address manages delivery addresses, plain ownership-scoped CRUD
// with no lifecycle of its own. The account service is consulted only
// through an owner-exists check at the store boundary (foreign key).
package address

// Address belongs to exactly one account and is addressed by (owner, id).
type Address struct {
	ID        int
	OwnerID   string
	Name      string
	Address   string
	Details   string
	Latitude  float64
	Longitude float64
}

// Patch carries a partial update; nil fields stay untouched. The owner can
// never change through a patch.
type Patch struct {
	Name      *string
	Address   *string
	Details   *string
	Latitude  *float64
	Longitude *float64
}

func (p Patch) apply(a *Address) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Address != nil {
		a.Address = *p.Address
	}
	if p.Details != nil {
		a.Details = *p.Details
	}
	if p.Latitude != nil {
		a.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		a.Longitude = *p.Longitude
	}
}
