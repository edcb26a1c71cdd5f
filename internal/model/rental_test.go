package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_RequiresNames(t *testing.T) {
	_, err := NewUser("", "Jane")
	assert.ErrorIs(t, err, ErrInvalidUser)
	_, err = NewUser("Doe", "  ")
	assert.ErrorIs(t, err, ErrInvalidUser)

	u, err := NewUser("Doe", "Jane")
	require.NoError(t, err)
	assert.True(t, u.IsTransient())
	assert.Empty(t, u.Rentals())
}

func TestNewRental_StampsToday(t *testing.T) {
	fixed := time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	u, _ := NewUser("Doe", "Jane")
	m, err := NewMovie("Inception", time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC), regular(t))
	require.NoError(t, err)

	r, err := NewRental(u.WithID(5), m.WithID(1), 3)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), r.RentalDate())
	assert.Equal(t, 3, r.RentalDays())
	assert.InDelta(t, 3.5, r.Charge(), 1e-9)
	assert.Equal(t, 1, r.FrequentRenterPoints())
}

func TestNewRental_Validation(t *testing.T) {
	u, _ := NewUser("Doe", "Jane")
	m, _ := NewMovie("Inception", time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC), regular(t))

	_, err := NewRental(nil, m, 1)
	assert.ErrorIs(t, err, ErrInvalidRental)
	_, err = NewRental(u, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidRental)
	_, err = NewRental(u, m, -1)
	assert.ErrorIs(t, err, ErrInvalidRental)
}
