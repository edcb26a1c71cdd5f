package model

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidMovie is returned when a movie is constructed without a
// title, release date or price category.
var ErrInvalidMovie = errors.New("invalid movie: title, release date and price category are required")

// Movie represents a title in the rental catalogue as stored in the
// MOVIES table.  Title and release date are fixed at construction; the
// rented flag and price category may change over the movie's lifetime.
//
// Fields:
//  id            – MOVIE_ID, zero while the movie is transient.
//  title         – MOVIE_TITLE.
//  releaseDate   – MOVIE_RELEASEDATE.
//  rented        – MOVIE_RENTED.
//  priceCategory – resolved from PRICECATEGORY_FK.
type Movie struct {
	id            int64          // movies.movie_id
	title         string         // movies.movie_title
	releaseDate   time.Time      // movies.movie_releasedate
	rented        bool           // movies.movie_rented
	priceCategory *PriceCategory // movies.pricecategory_fk
}

// NewMovie returns a transient, not rented movie.
func NewMovie(title string, releaseDate time.Time, category *PriceCategory) (*Movie, error) {
	return RestoreMovie(title, releaseDate, false, category)
}

// RestoreMovie is like NewMovie but takes the rented flag explicitly.  It
// is used when rebuilding a movie from a stored row.
func RestoreMovie(title string, releaseDate time.Time, rented bool, category *PriceCategory) (*Movie, error) {
	if strings.TrimSpace(title) == "" || releaseDate.IsZero() || category == nil {
		return nil, ErrInvalidMovie
	}
	return &Movie{
		title:         title,
		releaseDate:   releaseDate,
		rented:        rented,
		priceCategory: category,
	}, nil
}

func (m *Movie) ID() int64              { return m.id }
func (m *Movie) Title() string          { return m.title }
func (m *Movie) ReleaseDate() time.Time { return m.releaseDate }
func (m *Movie) Rented() bool           { return m.rented }
func (m *Movie) SetRented(rented bool)  { m.rented = rented }

func (m *Movie) PriceCategory() *PriceCategory { return m.priceCategory }

// SetPriceCategory replaces the movie's category.  A nil category is ignored.
func (m *Movie) SetPriceCategory(c *PriceCategory) {
	if c != nil {
		m.priceCategory = c
	}
}

// IsTransient reports whether the movie has not been persisted yet.
func (m *Movie) IsTransient() bool { return m.id == 0 }

// WithID returns a copy of m carrying the given identity.
func (m *Movie) WithID(id int64) *Movie {
	c := *m
	c.id = id
	return &c
}

// ResetID turns m back into a transient movie after its row was deleted.
func (m *Movie) ResetID() { m.id = 0 }
