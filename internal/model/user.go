package model

import (
	"errors"
	"strings"
)

// ErrInvalidUser is returned when a user lacks a last or first name.
var ErrInvalidUser = errors.New("invalid user: last name and first name are required")

// User represents a customer as stored in the USERS table.  The rental
// collection is not a column: it is recomputed from RENTALS each time
// the user is loaded.
//
// Fields:
//  id        – USER_ID, zero while the user is transient.
//  lastName  – USER_NAME.
//  firstName – USER_FIRSTNAME.
//  email     – USER_EMAIL, optional.
//  rentals   – derived from RENTALS.USER_ID.
type User struct {
	id        int64     // users.user_id
	lastName  string    // users.user_name
	firstName string    // users.user_firstname
	email     string    // users.user_email
	rentals   []*Rental // rentals where rentals.user_id = id
}

// NewUser returns a transient user without email or rentals.
func NewUser(lastName, firstName string) (*User, error) {
	if strings.TrimSpace(lastName) == "" || strings.TrimSpace(firstName) == "" {
		return nil, ErrInvalidUser
	}
	return &User{lastName: lastName, firstName: firstName}, nil
}

func (u *User) ID() int64          { return u.id }
func (u *User) LastName() string   { return u.lastName }
func (u *User) FirstName() string  { return u.firstName }
func (u *User) Email() string      { return u.email }
func (u *User) SetEmail(e string)  { u.email = e }
func (u *User) IsTransient() bool  { return u.id == 0 }
func (u *User) Rentals() []*Rental { return u.rentals }

// SetRentals replaces the derived rental collection.
func (u *User) SetRentals(rentals []*Rental) { u.rentals = rentals }

// WithID returns a copy of u carrying the given identity.  The copy
// shares the rental slice with u.
func (u *User) WithID(id int64) *User {
	c := *u
	c.id = id
	return &c
}
