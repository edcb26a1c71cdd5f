package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/haisi/eaf-movierental/internal/model"
)

// RentalLister is the part of the rental store the user store needs:
// loading a user's rentals and deleting them on cascade.
type RentalLister interface {
	FindByUser(ctx context.Context, user *model.User) ([]*model.Rental, error)
	Delete(ctx context.Context, rental *model.Rental) error
}

// UserRepo stores rows of USERS.  Users and rentals refer to each other,
// so the rental store is handed in as a function and only resolved when
// a user is loaded or deleted, after both stores exist.
type UserRepo struct {
	db      *sql.DB
	rentals func() RentalLister
}

// NewUserRepo constructs a UserRepo.  rentals must return a non-nil store
// by the time the first query runs.
func NewUserRepo(db *sql.DB, rentals func() RentalLister) *UserRepo {
	return &UserRepo{db: db, rentals: rentals}
}

const userColumns = "USER_ID, USER_NAME, USER_FIRSTNAME, USER_EMAIL"

type userRow struct {
	id        int64
	lastName  string
	firstName string
	email     sql.NullString
}

// FindByID returns the user with the given id, rentals included, or
// ErrUserNotFound.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	rows, err := r.scan(ctx, "SELECT "+userColumns+" FROM USERS WHERE USER_ID = ?", id)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return r.build(ctx, rows[0])
	}
	return nil, integrity("%d users share id %d", len(rows), id)
}

// FindAll returns every user ordered by id.
func (r *UserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	rows, err := r.scan(ctx, "SELECT "+userColumns+" FROM USERS ORDER BY USER_ID")
	if err != nil {
		return nil, err
	}
	return r.buildAll(ctx, rows)
}

// FindByLastName returns the users whose last name equals lastName exactly.
func (r *UserRepo) FindByLastName(ctx context.Context, lastName string) ([]*model.User, error) {
	if lastName == "" {
		return nil, invalidArg("empty last name")
	}
	return r.findBy(ctx, "USER_NAME", lastName, func(u userRow) bool { return u.lastName == lastName })
}

// FindByFirstName returns the users whose first name equals firstName exactly.
func (r *UserRepo) FindByFirstName(ctx context.Context, firstName string) ([]*model.User, error) {
	if firstName == "" {
		return nil, invalidArg("empty first name")
	}
	return r.findBy(ctx, "USER_FIRSTNAME", firstName, func(u userRow) bool { return u.firstName == firstName })
}

// FindByEmail returns the users whose email equals email exactly.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) ([]*model.User, error) {
	if email == "" {
		return nil, invalidArg("empty email")
	}
	return r.findBy(ctx, "USER_EMAIL", email, func(u userRow) bool { return u.email.Valid && u.email.String == email })
}

// findBy narrows on the server and re-checks each row in Go; only
// matching rows are turned into users, so non-matches never load rentals.
func (r *UserRepo) findBy(ctx context.Context, column, value string, match func(userRow) bool) ([]*model.User, error) {
	rows, err := r.scan(ctx, "SELECT "+userColumns+" FROM USERS WHERE "+column+" = ? ORDER BY USER_ID", value)
	if err != nil {
		return nil, err
	}
	return r.buildAll(ctx, keep(rows, match))
}

func (r *UserRepo) scan(ctx context.Context, q string, args ...any) ([]userRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []userRow
	for rows.Next() {
		var u userRow
		if err := rows.Scan(&u.id, &u.lastName, &u.firstName, &u.email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepo) buildAll(ctx context.Context, rows []userRow) ([]*model.User, error) {
	out := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		u, err := r.build(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// build creates the user and then fills in its rentals, passing the user
// itself to the rental store.
func (r *UserRepo) build(ctx context.Context, row userRow) (*model.User, error) {
	u, err := model.NewUser(row.lastName, row.firstName)
	if err != nil {
		return nil, integrity("user %d: %v", row.id, err)
	}
	u.SetEmail(row.email.String)
	u = u.WithID(row.id)

	rentals, err := r.rentals().FindByUser(ctx, u)
	if err != nil {
		return nil, err
	}
	u.SetRentals(rentals)
	return u, nil
}

// Save inserts a transient user and returns a copy carrying the generated
// id.  A persisted user has its name and email columns updated and is
// returned as is.
func (r *UserRepo) Save(ctx context.Context, u *model.User) (*model.User, error) {
	if u == nil {
		return nil, invalidArg("nil user")
	}
	email := sql.NullString{String: u.Email(), Valid: u.Email() != ""}
	if !u.IsTransient() {
		const q = "UPDATE USERS SET USER_NAME = ?, USER_FIRSTNAME = ?, USER_EMAIL = ? WHERE USER_ID = ?"
		if _, err := r.db.ExecContext(ctx, q, u.LastName(), u.FirstName(), email, u.ID()); err != nil {
			return nil, err
		}
		return u, nil
	}
	const q = "INSERT INTO USERS (USER_NAME, USER_FIRSTNAME, USER_EMAIL) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, u.LastName(), u.FirstName(), email)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return u.WithID(id), nil
}

// Delete removes the user together with its rentals.  The rentals are
// read again from the store, deleted one by one, and the user row goes
// last so no rental is left pointing at a missing user.  The statements
// are not wrapped in a transaction: if one fails, the deletions before it
// stay in effect.
func (r *UserRepo) Delete(ctx context.Context, u *model.User) error {
	if u == nil || u.IsTransient() {
		return invalidArg("nil or transient user")
	}
	rentals := r.rentals()
	owned, err := rentals.FindByUser(ctx, u)
	if err != nil {
		return err
	}
	for _, rental := range owned {
		if err := rentals.Delete(ctx, rental); err != nil {
			return err
		}
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM USERS WHERE USER_ID = ?", u.ID()); err != nil {
		return err
	}
	u.SetRentals(nil)
	return nil
}

// DeleteByID deletes the user, and its rentals, if it exists.
func (r *UserRepo) DeleteByID(ctx context.Context, id int64) error {
	if id == 0 {
		return invalidArg("zero user id")
	}
	u, err := r.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.Delete(ctx, u)
}

// ExistsByID reports whether a user with the given id exists.  A zero id
// is an invalid argument, as for DeleteByID.
func (r *UserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if id == 0 {
		return false, invalidArg("zero user id")
	}
	return exists(r.FindByID(ctx, id))
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "USERS")
}
