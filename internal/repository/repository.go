package repository

import (
	"context"
	"database/sql"
)

// Stores bundles the four rental stores over one database handle.
type Stores struct {
	PriceCategories *PriceCategoryRepo
	Movies          *MovieRepo
	Users           *UserRepo
	Rentals         *RentalRepo

	db *sql.DB
}

// New builds and wires the stores.  The user store is created before the
// rental store exists and reaches it through a closure, which breaks the
// user/rental construction cycle.
func New(db *sql.DB) *Stores {
	s := &Stores{db: db, PriceCategories: NewPriceCategoryRepo(db)}
	s.Movies = NewMovieRepo(db, s.PriceCategories)
	s.Users = NewUserRepo(db, func() RentalLister { return s.Rentals })
	s.Rentals = NewRentalRepo(db, s.Users, s.Movies)
	return s
}

// Ping checks the underlying connection.
func (s *Stores) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
