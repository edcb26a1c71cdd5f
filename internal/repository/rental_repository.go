package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/haisi/eaf-movierental/internal/model"
)

// UserFinder resolves a rental's USER_ID.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// MovieFinder resolves a rental's MOVIE_ID.
type MovieFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Movie, error)
}

// RentalRepo stores rows of RENTALS.  Reading a rental resolves both of
// its foreign keys through the user and movie stores.
type RentalRepo struct {
	db     *sql.DB
	users  UserFinder
	movies MovieFinder
}

// NewRentalRepo constructs a RentalRepo.
func NewRentalRepo(db *sql.DB, users UserFinder, movies MovieFinder) *RentalRepo {
	return &RentalRepo{db: db, users: users, movies: movies}
}

const rentalColumns = "RENTAL_ID, USER_ID, MOVIE_ID, RENTAL_RENTALDATE, RENTAL_RENTALDAYS"

type rentalRow struct {
	id      int64
	userID  int64
	movieID int64
	date    time.Time
	days    int
}

// FindByID returns the rental with the given id or ErrRentalNotFound.
func (r *RentalRepo) FindByID(ctx context.Context, id int64) (*model.Rental, error) {
	if id == 0 {
		return nil, invalidArg("zero rental id")
	}
	rows, err := r.scan(ctx, "SELECT "+rentalColumns+" FROM RENTALS WHERE RENTAL_ID = ?", id)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, ErrRentalNotFound
	case 1:
		return r.build(ctx, rows[0], nil)
	}
	return nil, integrity("%d rentals share id %d", len(rows), id)
}

// FindAll returns every rental ordered by id.
func (r *RentalRepo) FindAll(ctx context.Context) ([]*model.Rental, error) {
	rows, err := r.scan(ctx, "SELECT "+rentalColumns+" FROM RENTALS ORDER BY RENTAL_ID")
	if err != nil {
		return nil, err
	}
	out := make([]*model.Rental, 0, len(rows))
	for _, row := range rows {
		rental, err := r.build(ctx, row, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, rental)
	}
	return out, nil
}

// FindByUser returns the rentals owned by user.  The given user value is
// attached to every rental as is; it is not loaded again, which is what
// keeps a user load from recursing through its own rentals.
func (r *RentalRepo) FindByUser(ctx context.Context, user *model.User) ([]*model.Rental, error) {
	if user == nil || user.IsTransient() {
		return nil, invalidArg("rentals requested for a nil or transient user")
	}
	rows, err := r.scan(ctx, "SELECT "+rentalColumns+" FROM RENTALS WHERE USER_ID = ? ORDER BY RENTAL_ID", user.ID())
	if err != nil {
		return nil, err
	}
	out := make([]*model.Rental, 0, len(rows))
	for _, row := range rows {
		rental, err := r.build(ctx, row, user)
		if err != nil {
			return nil, err
		}
		out = append(out, rental)
	}
	return out, nil
}

func (r *RentalRepo) scan(ctx context.Context, q string, args ...any) ([]rentalRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rentalRow
	for rows.Next() {
		var rr rentalRow
		if err := rows.Scan(&rr.id, &rr.userID, &rr.movieID, &rr.date, &rr.days); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// build resolves the row's user (unless owner is supplied) and movie.
// Either reference failing to resolve is a data integrity violation.
func (r *RentalRepo) build(ctx context.Context, row rentalRow, owner *model.User) (*model.Rental, error) {
	user := owner
	if user == nil {
		u, err := r.users.FindByID(ctx, row.userID)
		if errors.Is(err, ErrNotFound) {
			return nil, integrity("rental %d: user %d not found", row.id, row.userID)
		}
		if err != nil {
			return nil, err
		}
		user = u
	}
	movie, err := r.movies.FindByID(ctx, row.movieID)
	if errors.Is(err, ErrNotFound) {
		return nil, integrity("rental %d: movie %d not found", row.id, row.movieID)
	}
	if err != nil {
		return nil, err
	}
	rental, err := model.RestoreRental(user, movie, row.date, row.days)
	if err != nil {
		return nil, integrity("rental %d: %v", row.id, err)
	}
	return rental.WithID(row.id), nil
}

// Save inserts the rental and returns a copy carrying the generated id.
// There is no update path.  Both the user and the movie must already be
// persisted.
func (r *RentalRepo) Save(ctx context.Context, rental *model.Rental) (*model.Rental, error) {
	if rental == nil {
		return nil, invalidArg("nil rental")
	}
	if rental.User().IsTransient() || rental.Movie().IsTransient() {
		return nil, invalidArg("rental references a transient user or movie")
	}
	const q = `INSERT INTO RENTALS (USER_ID, MOVIE_ID, RENTAL_RENTALDATE, RENTAL_RENTALDAYS)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		rental.User().ID(), rental.Movie().ID(), rental.RentalDate(), rental.RentalDays())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return rental.WithID(id), nil
}

// Delete removes the rental's row.  Unlike movies, the rental keeps its id.
func (r *RentalRepo) Delete(ctx context.Context, rental *model.Rental) error {
	if rental == nil {
		return invalidArg("nil rental")
	}
	return r.DeleteByID(ctx, rental.ID())
}

// DeleteByID removes the row with the given id; a missing row is not an error.
func (r *RentalRepo) DeleteByID(ctx context.Context, id int64) error {
	if id == 0 {
		return invalidArg("zero rental id")
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM RENTALS WHERE RENTAL_ID = ?", id)
	return err
}

// ExistsByID reports whether a row with the given id exists.  A zero id
// is an invalid argument, as for DeleteByID.
func (r *RentalRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if id == 0 {
		return false, invalidArg("zero rental id")
	}
	return exists(r.FindByID(ctx, id))
}

func (r *RentalRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "RENTALS")
}
