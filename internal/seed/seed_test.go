package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haisi/eaf-movierental/internal/database"
	"github.com/haisi/eaf-movierental/internal/model"
	"github.com/haisi/eaf-movierental/internal/repository"
)

const doc = `
price_categories: [Regular, Children]
movies:
  - title: Shrek
    release_date: "2001-05-18"
    category: Children
  - title: Dune
    release_date: "2021-10-22"
    rented: true
    category: NewRelease
users:
  - last_name: Keller
    first_name: Marc
    email: marc@example.com
`

func newStores(t *testing.T) *repository.Stores {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, database.DriverSQLite))
	return repository.New(db)
}

func TestParse_RejectsUnknownKind(t *testing.T) {
	_, err := Parse([]byte("price_categories: [Premium]\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownKind)
}

func TestParse_RejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("actors: []\n"))
	require.Error(t, err)
}

func TestParse_RejectsBadDate(t *testing.T) {
	_, err := Parse([]byte("movies:\n  - title: X\n    release_date: yesterday\n    category: Regular\n"))
	require.Error(t, err)
}

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	f, err := Load(path)
	require.NoError(t, err)

	ctx := context.Background()
	s := newStores(t)
	res, err := Apply(ctx, s, f)
	require.NoError(t, err)
	assert.Equal(t, Result{PriceCategories: 3, Movies: 2, Users: 1}, res)

	dune, err := s.Movies.FindByTitle(ctx, "Dune")
	require.NoError(t, err)
	require.Len(t, dune, 1)
	assert.True(t, dune[0].Rented())
	assert.Equal(t, model.KindNewRelease, dune[0].PriceCategory().Kind())

	users, err := s.Users.FindByEmail(ctx, "marc@example.com")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Keller", users[0].LastName())
}

func TestApply_IsRepeatable(t *testing.T) {
	f, err := Parse([]byte(doc))
	require.NoError(t, err)
	ctx := context.Background()
	s := newStores(t)

	_, err = Apply(ctx, s, f)
	require.NoError(t, err)
	res, err := Apply(ctx, s, f)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	n, err := s.Movies.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	n, err = s.PriceCategories.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
