package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haisi/eaf-movierental/internal/config"
)

func TestMigrate_SQLiteIsIdempotent(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "rental.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		require.NoError(t, Migrate(ctx, db, DriverSQLite), "migration run %d", i)
	}

	for _, table := range []string{"PRICECATEGORIES", "MOVIES", "USERS", "RENTALS"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestOpenSQLite_EnforcesForeignKeys(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "rental.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db, DriverSQLite))

	_, err = db.Exec(`INSERT INTO MOVIES (MOVIE_TITLE, MOVIE_RELEASEDATE, MOVIE_RENTED, PRICECATEGORY_FK)
	                  VALUES ('Orphan', '2020-01-01', 0, 42)`)
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.Config{DBDriver: "postgres"})
	assert.Error(t, err)
	assert.Error(t, Migrate(context.Background(), nil, "postgres"))
}
