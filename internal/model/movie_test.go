package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regular(t *testing.T) *PriceCategory {
	t.Helper()
	c, err := NewPriceCategory(KindRegular)
	require.NoError(t, err)
	return c.WithID(1)
}

func TestNewMovie_RequiresFields(t *testing.T) {
	date := time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC)
	cat := regular(t)

	_, err := NewMovie("", date, cat)
	assert.ErrorIs(t, err, ErrInvalidMovie)
	_, err = NewMovie("Inception", time.Time{}, cat)
	assert.ErrorIs(t, err, ErrInvalidMovie)
	_, err = NewMovie("Inception", date, nil)
	assert.ErrorIs(t, err, ErrInvalidMovie)

	m, err := NewMovie("Inception", date, cat)
	require.NoError(t, err)
	assert.True(t, m.IsTransient())
	assert.False(t, m.Rented())
}

func TestMovie_WithIDLeavesOriginalTransient(t *testing.T) {
	m, err := NewMovie("Inception", time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC), regular(t))
	require.NoError(t, err)

	saved := m.WithID(1)
	assert.Equal(t, int64(0), m.ID())
	assert.Equal(t, int64(1), saved.ID())
	assert.Equal(t, m.Title(), saved.Title())

	saved.ResetID()
	assert.True(t, saved.IsTransient())
}

func TestMovie_SetPriceCategoryIgnoresNil(t *testing.T) {
	m, err := NewMovie("Up", time.Date(2009, 5, 29, 0, 0, 0, 0, time.UTC), regular(t))
	require.NoError(t, err)

	m.SetPriceCategory(nil)
	require.NotNil(t, m.PriceCategory())
	assert.Equal(t, KindRegular, m.PriceCategory().Kind())
}
