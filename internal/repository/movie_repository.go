package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/haisi/eaf-movierental/internal/model"
)

// PriceCategoryFinder resolves a movie's PRICECATEGORY_FK.
type PriceCategoryFinder interface {
	FindByID(ctx context.Context, id int64) (*model.PriceCategory, error)
}

// MovieRepo stores rows of MOVIES.  Each movie read back is attached to
// its price category, looked up through the category store.
type MovieRepo struct {
	db         *sql.DB
	categories PriceCategoryFinder
}

// NewMovieRepo constructs a MovieRepo.
func NewMovieRepo(db *sql.DB, categories PriceCategoryFinder) *MovieRepo {
	return &MovieRepo{db: db, categories: categories}
}

const movieColumns = "MOVIE_ID, MOVIE_TITLE, MOVIE_RELEASEDATE, MOVIE_RENTED, PRICECATEGORY_FK"

// movieRow is a MOVIES row before its foreign key is resolved.
type movieRow struct {
	id          int64
	title       string
	releaseDate time.Time
	rented      bool
	categoryID  int64
}

// FindByID returns the movie with the given id or ErrMovieNotFound.
func (r *MovieRepo) FindByID(ctx context.Context, id int64) (*model.Movie, error) {
	rows, err := r.scan(ctx, "SELECT "+movieColumns+" FROM MOVIES WHERE MOVIE_ID = ?", id)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, ErrMovieNotFound
	case 1:
		return r.build(ctx, rows[0])
	}
	return nil, integrity("%d movies share id %d", len(rows), id)
}

// FindAll returns every movie ordered by id.
func (r *MovieRepo) FindAll(ctx context.Context) ([]*model.Movie, error) {
	rows, err := r.scan(ctx, "SELECT "+movieColumns+" FROM MOVIES ORDER BY MOVIE_ID")
	if err != nil {
		return nil, err
	}
	return r.buildAll(ctx, rows)
}

// FindByTitle returns the movies whose title equals title exactly.
func (r *MovieRepo) FindByTitle(ctx context.Context, title string) ([]*model.Movie, error) {
	if title == "" {
		return nil, invalidArg("empty title")
	}
	rows, err := r.scan(ctx, "SELECT "+movieColumns+" FROM MOVIES WHERE MOVIE_TITLE = ? ORDER BY MOVIE_ID", title)
	if err != nil {
		return nil, err
	}
	rows = keep(rows, func(m movieRow) bool { return m.title == title })
	return r.buildAll(ctx, rows)
}

// scan reads all matching rows and closes the result set before any
// category lookup runs.
func (r *MovieRepo) scan(ctx context.Context, q string, args ...any) ([]movieRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []movieRow
	for rows.Next() {
		var m movieRow
		if err := rows.Scan(&m.id, &m.title, &m.releaseDate, &m.rented, &m.categoryID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MovieRepo) buildAll(ctx context.Context, rows []movieRow) ([]*model.Movie, error) {
	out := make([]*model.Movie, 0, len(rows))
	for _, row := range rows {
		m, err := r.build(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// build resolves the price category.  A dangling foreign key means the
// stored data is inconsistent, not that the movie is absent.
func (r *MovieRepo) build(ctx context.Context, row movieRow) (*model.Movie, error) {
	c, err := r.categories.FindByID(ctx, row.categoryID)
	if errors.Is(err, ErrNotFound) {
		return nil, integrity("movie %d references missing price category %d", row.id, row.categoryID)
	}
	if err != nil {
		return nil, err
	}
	m, err := model.RestoreMovie(row.title, row.releaseDate, row.rented, c)
	if err != nil {
		return nil, integrity("movie %d: %v", row.id, err)
	}
	return m.WithID(row.id), nil
}

// Save inserts a transient movie and returns a copy carrying the
// generated id, or updates a persisted movie and returns it unchanged.
// The price category must already be persisted.
func (r *MovieRepo) Save(ctx context.Context, m *model.Movie) (*model.Movie, error) {
	if m == nil {
		return nil, invalidArg("nil movie")
	}
	if m.PriceCategory().IsTransient() {
		return nil, invalidArg("movie %q has a transient price category", m.Title())
	}
	if !m.IsTransient() {
		const q = `UPDATE MOVIES
		           SET MOVIE_RELEASEDATE = ?, MOVIE_TITLE = ?, MOVIE_RENTED = ?, PRICECATEGORY_FK = ?
		           WHERE MOVIE_ID = ?`
		if _, err := r.db.ExecContext(ctx, q,
			m.ReleaseDate(), m.Title(), m.Rented(), m.PriceCategory().ID(), m.ID()); err != nil {
			return nil, err
		}
		return m, nil
	}
	const q = `INSERT INTO MOVIES (MOVIE_RELEASEDATE, MOVIE_TITLE, MOVIE_RENTED, PRICECATEGORY_FK)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.ReleaseDate(), m.Title(), m.Rented(), m.PriceCategory().ID())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return m.WithID(id), nil
}

// Delete removes the movie's row and turns m back into a transient movie.
// A movie with rentals is refused with ErrReferenced.
func (r *MovieRepo) Delete(ctx context.Context, m *model.Movie) error {
	if m == nil {
		return invalidArg("nil movie")
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM MOVIES WHERE MOVIE_ID = ?", m.ID()); err != nil {
		return referenced(err, "movie %d has rentals", m.ID())
	}
	m.ResetID()
	return nil
}

// DeleteByID deletes the movie if it exists.
func (r *MovieRepo) DeleteByID(ctx context.Context, id int64) error {
	if id == 0 {
		return invalidArg("zero movie id")
	}
	m, err := r.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.Delete(ctx, m)
}

// ExistsByID reports whether a row with the given id exists.  A zero id
// is an invalid argument, as for DeleteByID.
func (r *MovieRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if id == 0 {
		return false, invalidArg("zero movie id")
	}
	return exists(r.FindByID(ctx, id))
}

func (r *MovieRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "MOVIES")
}
