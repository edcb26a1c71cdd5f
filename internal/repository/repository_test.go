package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStores_ZeroIDIsInvalidEverywhere(t *testing.T) {
	s, _ := newTestStores(t)
	ctx := context.Background()

	stores := map[string]struct {
		exists func(context.Context, int64) (bool, error)
		delete func(context.Context, int64) error
	}{
		"price categories": {s.PriceCategories.ExistsByID, s.PriceCategories.DeleteByID},
		"movies":           {s.Movies.ExistsByID, s.Movies.DeleteByID},
		"users":            {s.Users.ExistsByID, s.Users.DeleteByID},
		"rentals":          {s.Rentals.ExistsByID, s.Rentals.DeleteByID},
	}
	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			ok, err := st.exists(ctx, 0)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.False(t, ok)
			assert.ErrorIs(t, st.delete(ctx, 0), ErrInvalidArgument)

			ok, err = st.exists(ctx, 4711)
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}
