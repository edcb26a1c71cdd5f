package model

import (
	"errors"
	"time"
)

// ErrInvalidRental is returned when a rental lacks a user or movie or has
// a negative duration.
var ErrInvalidRental = errors.New("invalid rental: user, movie and a non-negative duration are required")

// now is replaced in tests.
var now = time.Now

// Today returns the current UTC date truncated to midnight.
func Today() time.Time {
	t := now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Rental records that a user took a movie home for a number of days.  It
// mirrors a row of the RENTALS table with both foreign keys resolved.
//
// Fields:
//  id         – RENTAL_ID, zero while the rental is transient.
//  user       – resolved from USER_ID.
//  movie      – resolved from MOVIE_ID.
//  rentalDate – RENTAL_RENTALDATE.
//  rentalDays – RENTAL_RENTALDAYS.
type Rental struct {
	id         int64     // rentals.rental_id
	user       *User     // rentals.user_id
	movie      *Movie    // rentals.movie_id
	rentalDate time.Time // rentals.rental_rentaldate
	rentalDays int       // rentals.rental_rentaldays
}

// NewRental returns a transient rental starting today.
func NewRental(user *User, movie *Movie, days int) (*Rental, error) {
	return RestoreRental(user, movie, Today(), days)
}

// RestoreRental builds a rental with an explicit start date, as read
// back from storage.
func RestoreRental(user *User, movie *Movie, date time.Time, days int) (*Rental, error) {
	if user == nil || movie == nil || days < 0 {
		return nil, ErrInvalidRental
	}
	return &Rental{user: user, movie: movie, rentalDate: date, rentalDays: days}, nil
}

func (r *Rental) ID() int64             { return r.id }
func (r *Rental) User() *User           { return r.user }
func (r *Rental) Movie() *Movie         { return r.movie }
func (r *Rental) RentalDate() time.Time { return r.rentalDate }
func (r *Rental) RentalDays() int       { return r.rentalDays }
func (r *Rental) IsTransient() bool     { return r.id == 0 }

// WithID returns a copy of r carrying the given identity.
func (r *Rental) WithID(id int64) *Rental {
	c := *r
	c.id = id
	return &c
}

// Charge is the fee for this rental under the movie's price category.
func (r *Rental) Charge() float64 {
	return r.movie.PriceCategory().Charge(r.rentalDays)
}

// FrequentRenterPoints is the bonus earned by this rental.
func (r *Rental) FrequentRenterPoints() int {
	return r.movie.PriceCategory().FrequentRenterPoints(r.rentalDays)
}
