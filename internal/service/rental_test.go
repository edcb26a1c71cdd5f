package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haisi/eaf-movierental/internal/database"
	"github.com/haisi/eaf-movierental/internal/model"
	"github.com/haisi/eaf-movierental/internal/queue"
	"github.com/haisi/eaf-movierental/internal/repository"
)

type recordingPublisher struct {
	events []queue.RentalEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.RentalEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

type fixture struct {
	stores *repository.Stores
	svc    *RentalService
	events *recordingPublisher
	user   *model.User
	movie  *model.Movie
}

func newFixture(t *testing.T, kind model.Kind) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "rental.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db, database.DriverSQLite))

	stores := repository.New(db)
	c, _ := model.NewPriceCategory(kind)
	c, err = stores.PriceCategories.Save(ctx, c)
	require.NoError(t, err)
	m, _ := model.NewMovie("Inception", time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC), c)
	m, err = stores.Movies.Save(ctx, m)
	require.NoError(t, err)
	u, _ := model.NewUser("Doe", "Jane")
	u, err = stores.Users.Save(ctx, u)
	require.NoError(t, err)

	events := &recordingPublisher{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		stores: stores,
		svc:    NewRentalService(stores.Movies, stores.Users, stores.Rentals, events, log),
		events: events,
		user:   u,
		movie:  m,
	}
}

func TestRentMovie_MarksMovieRentedAndPublishes(t *testing.T) {
	f := newFixture(t, model.KindRegular)
	ctx := context.Background()

	r, err := f.svc.RentMovie(ctx, f.user.ID(), f.movie.ID(), 3)
	require.NoError(t, err)
	assert.NotZero(t, r.ID())

	m, err := f.stores.Movies.FindByID(ctx, f.movie.ID())
	require.NoError(t, err)
	assert.True(t, m.Rented())

	require.Len(t, f.events.events, 1)
	assert.Equal(t, queue.EventRentalCreated, f.events.events[0].Type)
	assert.Equal(t, r.ID(), f.events.events[0].RentalID)
}

func TestRentMovie_RejectsRentedMovie(t *testing.T) {
	f := newFixture(t, model.KindRegular)
	ctx := context.Background()

	_, err := f.svc.RentMovie(ctx, f.user.ID(), f.movie.ID(), 1)
	require.NoError(t, err)
	_, err = f.svc.RentMovie(ctx, f.user.ID(), f.movie.ID(), 1)
	assert.ErrorIs(t, err, ErrMovieAlreadyRented)

	n, _ := f.stores.Rentals.Count(ctx)
	assert.Equal(t, int64(1), n)
}

func TestRentMovie_UnknownUser(t *testing.T) {
	f := newFixture(t, model.KindRegular)

	_, err := f.svc.RentMovie(context.Background(), 404, f.movie.ID(), 1)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Empty(t, f.events.events)
}

func TestRentMovie_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, model.KindRegular)
	f.events.err = errors.New("broker down")

	_, err := f.svc.RentMovie(context.Background(), f.user.ID(), f.movie.ID(), 2)
	assert.NoError(t, err)
}

func TestReturnRental_ClearsRentedFlag(t *testing.T) {
	f := newFixture(t, model.KindRegular)
	ctx := context.Background()
	r, err := f.svc.RentMovie(ctx, f.user.ID(), f.movie.ID(), 2)
	require.NoError(t, err)

	_, err = f.svc.ReturnRental(ctx, r.ID())
	require.NoError(t, err)

	m, err := f.stores.Movies.FindByID(ctx, f.movie.ID())
	require.NoError(t, err)
	assert.False(t, m.Rented())
	ok, _ := f.stores.Rentals.ExistsByID(ctx, r.ID())
	assert.False(t, ok)
	assert.Equal(t, queue.EventRentalReturned, f.events.events[len(f.events.events)-1].Type)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t, model.KindRegular)
	ctx := context.Background()
	r, err := f.svc.RentMovie(ctx, f.user.ID(), f.movie.ID(), 2)
	require.NoError(t, err)

	found, err := f.svc.DeleteUser(ctx, f.user.ID())
	require.NoError(t, err)
	assert.True(t, found)
	ok, _ := f.stores.Rentals.ExistsByID(ctx, r.ID())
	assert.False(t, ok)
	m, err := f.stores.Movies.FindByID(ctx, f.movie.ID())
	require.NoError(t, err)
	assert.False(t, m.Rented())

	found, err = f.svc.DeleteUser(ctx, f.user.ID())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, queue.EventUserDeleted, f.events.events[len(f.events.events)-1].Type)
}

func TestStatement(t *testing.T) {
	f := newFixture(t, model.KindNewRelease)
	ctx := context.Background()
	_, err := f.svc.RentMovie(ctx, f.user.ID(), f.movie.ID(), 3)
	require.NoError(t, err)

	st, err := f.svc.Statement(ctx, f.user.ID())
	require.NoError(t, err)
	require.Len(t, st.Lines, 1)
	assert.Equal(t, "Inception", st.Lines[0].MovieTitle)
	assert.Equal(t, "NewRelease", st.Lines[0].Category)
	assert.InDelta(t, 9.0, st.TotalCharge, 1e-9)
	assert.Equal(t, 2, st.TotalPoints)
}
