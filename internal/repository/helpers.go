package repository

import (
	"context"
	"database/sql"
	"errors"
)

// exists turns the result of a FindByID into a presence flag.
func exists[T any](_ T, err error) (bool, error) {
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// count runs SELECT COUNT(*) on one of the fixed table names above.
func count(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// keep returns the items for which match reports true.  The finders use
// it after a server-side WHERE so that case-folding collations cannot
// widen an exact match.
func keep[T any](items []T, match func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}
