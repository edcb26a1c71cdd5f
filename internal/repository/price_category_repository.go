package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haisi/eaf-movierental/internal/model"
)

// PriceCategoryRepo stores rows of PRICECATEGORIES and rebuilds them into
// model.PriceCategory values from the PRICECATEGORY_TYPE discriminator.
type PriceCategoryRepo struct {
	db *sql.DB
}

// NewPriceCategoryRepo constructs a PriceCategoryRepo with the provided DB handle.
func NewPriceCategoryRepo(db *sql.DB) *PriceCategoryRepo {
	return &PriceCategoryRepo{db: db}
}

const priceCategoryColumns = "PRICECATEGORY_ID, PRICECATEGORY_TYPE"

// FindByID returns the category with the given id or ErrPriceCategoryNotFound.
// More than one row for the id is reported as ErrDataIntegrity.
func (r *PriceCategoryRepo) FindByID(ctx context.Context, id int64) (*model.PriceCategory, error) {
	const q = "SELECT " + priceCategoryColumns + " FROM PRICECATEGORIES WHERE PRICECATEGORY_ID = ?"
	out, err := r.query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	switch len(out) {
	case 0:
		return nil, ErrPriceCategoryNotFound
	case 1:
		return out[0], nil
	}
	return nil, integrity("%d price categories share id %d", len(out), id)
}

// FindAll returns every stored category ordered by id.
func (r *PriceCategoryRepo) FindAll(ctx context.Context) ([]*model.PriceCategory, error) {
	return r.query(ctx, "SELECT "+priceCategoryColumns+" FROM PRICECATEGORIES ORDER BY PRICECATEGORY_ID")
}

func (r *PriceCategoryRepo) query(ctx context.Context, q string, args ...any) ([]*model.PriceCategory, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.PriceCategory
	for rows.Next() {
		var (
			id  int64
			typ string
		)
		if err := rows.Scan(&id, &typ); err != nil {
			return nil, err
		}
		c, err := newPriceCategory(id, typ)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// newPriceCategory dispatches on the stored discriminator.  An unknown
// value is corrupt data and fails the whole read.
func newPriceCategory(id int64, typ string) (*model.PriceCategory, error) {
	kind, err := model.ParseKind(typ)
	if err != nil {
		return nil, fmt.Errorf("%w: price category %d: %w", ErrDataIntegrity, id, err)
	}
	c, err := model.NewPriceCategory(kind)
	if err != nil {
		return nil, err
	}
	return c.WithID(id), nil
}

// Save inserts a transient category and returns a copy carrying the
// generated id.  A persisted category has its discriminator updated and
// is returned as is.
func (r *PriceCategoryRepo) Save(ctx context.Context, c *model.PriceCategory) (*model.PriceCategory, error) {
	if c == nil {
		return nil, invalidArg("nil price category")
	}
	if !c.IsTransient() {
		const q = "UPDATE PRICECATEGORIES SET PRICECATEGORY_TYPE = ? WHERE PRICECATEGORY_ID = ?"
		if _, err := r.db.ExecContext(ctx, q, c.Kind().String(), c.ID()); err != nil {
			return nil, err
		}
		return c, nil
	}
	res, err := r.db.ExecContext(ctx, "INSERT INTO PRICECATEGORIES (PRICECATEGORY_TYPE) VALUES (?)", c.Kind().String())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return c.WithID(id), nil
}

// Delete removes the category's row.  Movies still referencing it make
// it fail with ErrReferenced.
func (r *PriceCategoryRepo) Delete(ctx context.Context, c *model.PriceCategory) error {
	if c == nil {
		return invalidArg("nil price category")
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM PRICECATEGORIES WHERE PRICECATEGORY_ID = ?", c.ID())
	return referenced(err, "price category %d is used by a movie", c.ID())
}

// DeleteByID deletes the category if it exists.
func (r *PriceCategoryRepo) DeleteByID(ctx context.Context, id int64) error {
	if id == 0 {
		return invalidArg("zero price category id")
	}
	c, err := r.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.Delete(ctx, c)
}

// ExistsByID reports whether a row with the given id exists.  A zero id
// is an invalid argument, as for DeleteByID.
func (r *PriceCategoryRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if id == 0 {
		return false, invalidArg("zero price category id")
	}
	return exists(r.FindByID(ctx, id))
}

func (r *PriceCategoryRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "PRICECATEGORIES")
}
