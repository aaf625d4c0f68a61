// Package payment manages stored payment methods. Unlike addresses, the
// owner-exists rule is enforced in the service, not at the store boundary.
package payment

// Method is a stored card plus its billing contact details.
type Method struct {
	ID             int
	OwnerID        string
	CardNumber     string
	Email          string
	Phone          string
	ExpiryDate     string
	CardHolderName string
	City           string
	FirstLine      string
	SecondLine     string
	Country        string
	PostalCode     string
	StateName      string
}

// Patch carries a partial update; nil fields stay untouched. The owner can
// never change through a patch.
type Patch struct {
	CardNumber     *string
	Email          *string
	Phone          *string
	ExpiryDate     *string
	CardHolderName *string
	City           *string
	FirstLine      *string
	SecondLine     *string
	Country        *string
	PostalCode     *string
	StateName      *string
}

func (p Patch) apply(m *Method) {
	if p.CardNumber != nil {
		m.CardNumber = *p.CardNumber
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.ExpiryDate != nil {
		m.ExpiryDate = *p.ExpiryDate
	}
	if p.CardHolderName != nil {
		m.CardHolderName = *p.CardHolderName
	}
	if p.City != nil {
		m.City = *p.City
	}
	if p.FirstLine != nil {
		m.FirstLine = *p.FirstLine
	}
	if p.SecondLine != nil {
		m.SecondLine = *p.SecondLine
	}
	if p.Country != nil {
		m.Country = *p.Country
	}
	if p.PostalCode != nil {
		m.PostalCode = *p.PostalCode
	}
	if p.StateName != nil {
		m.StateName = *p.StateName
	}
}
