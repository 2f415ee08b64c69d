package domain

import "unicode/utf8"

// Column limits for users, in characters.
const (
	MaxUserNameLength    = 100
	MaxUserAddressLength = 255
	MaxUserEmailLength   = 120
)

// User is a customer who places orders.
type User struct {
	ID      int64
	Name    string
	Address string
	Email   string
}

// NewUser builds a User from its attributes and validates it.
// The ID is assigned by the store on insert.
func NewUser(name, address, email string) (*User, error) {
	user := &User{
		Name:    name,
		Address: address,
		Email:   email,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the User against the column limits.
// Email format and uniqueness are left to the store.
func (u *User) Validate() error {
	verr := &ValidationError{}
	checkLength(verr, "name", u.Name, MaxUserNameLength)
	checkLength(verr, "address", u.Address, MaxUserAddressLength)
	checkLength(verr, "email", u.Email, MaxUserEmailLength)
	return verr.OrNil()
}

// UserPatch is a partial update of a User. Nil fields are left untouched.
type UserPatch struct {
	Name    *string
	Address *string
	Email   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.Email == nil
}

// Apply merges the present fields of p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// checkLength records a failure when value is longer than max characters.
func checkLength(verr *ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		verr.Add(field, MsgLongerThan(max))
	}
}
