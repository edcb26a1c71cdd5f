// Package repository defines error values shared by the rental stores.
// Callers distinguish the failure classes with errors.Is:
//
//   - ErrNotFound: a lookup by id found no row.  Each store wraps it in
//     its own sentinel (ErrMovieNotFound, ...).
//   - ErrInvalidArgument: a required argument was nil, zero or empty.
//     Nothing was sent to the database.
//   - ErrDataIntegrity: stored data broke an invariant the stores rely
//     on, such as a duplicated id, an unresolvable foreign key or an
//     unknown price category discriminator.  Never masked or defaulted.
//   - ErrReferenced: a delete was refused because other rows still point
//     at the row, e.g. a price category used by a movie.
//
// Driver errors are returned unchanged.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDataIntegrity   = errors.New("data integrity violation")
	ErrReferenced      = errors.New("still referenced")
)

var (
	ErrPriceCategoryNotFound = fmt.Errorf("price category %w", ErrNotFound)
	ErrMovieNotFound         = fmt.Errorf("movie %w", ErrNotFound)
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrRentalNotFound        = fmt.Errorf("rental %w", ErrNotFound)
)

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func integrity(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDataIntegrity, fmt.Sprintf(format, args...))
}

// mysqlRowIsReferenced is ER_ROW_IS_REFERENCED_2.
const mysqlRowIsReferenced = 1451

// referenced translates a foreign key violation raised by a DELETE into
// ErrReferenced.  Other errors pass through.
func referenced(err error, format string, args ...any) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlRowIsReferenced {
		return fmt.Errorf("%w: %s", ErrReferenced, fmt.Sprintf(format, args...))
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return fmt.Errorf("%w: %s", ErrReferenced, fmt.Sprintf(format, args...))
	}
	return err
}
