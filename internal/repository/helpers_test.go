package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/haisi/eaf-movierental/internal/database"
	"github.com/haisi/eaf-movierental/internal/model"
)

// newTestStores opens a migrated SQLite database under t.TempDir().
func newTestStores(t *testing.T) (*Stores, *sql.DB) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "rental.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, database.DriverSQLite))
	return New(db), db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func saveCategory(t *testing.T, s *Stores, kind model.Kind) *model.PriceCategory {
	t.Helper()
	c, err := model.NewPriceCategory(kind)
	require.NoError(t, err)
	saved, err := s.PriceCategories.Save(context.Background(), c)
	require.NoError(t, err)
	return saved
}

func saveMovie(t *testing.T, s *Stores, title string, c *model.PriceCategory) *model.Movie {
	t.Helper()
	m, err := model.NewMovie(title, date(2010, 7, 16), c)
	require.NoError(t, err)
	saved, err := s.Movies.Save(context.Background(), m)
	require.NoError(t, err)
	return saved
}

func saveUser(t *testing.T, s *Stores, last, first, email string) *model.User {
	t.Helper()
	u, err := model.NewUser(last, first)
	require.NoError(t, err)
	u.SetEmail(email)
	saved, err := s.Users.Save(context.Background(), u)
	require.NoError(t, err)
	return saved
}

func saveRental(t *testing.T, s *Stores, u *model.User, m *model.Movie, days int) *model.Rental {
	t.Helper()
	r, err := model.NewRental(u, m, days)
	require.NoError(t, err)
	saved, err := s.Rentals.Save(context.Background(), r)
	require.NoError(t, err)
	return saved
}
