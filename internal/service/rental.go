// Package service implements the rental workflows on top of the stores:
// renting and returning movies, removing customers, and statements.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/haisi/eaf-movierental/internal/model"
	"github.com/haisi/eaf-movierental/internal/queue"
	"github.com/haisi/eaf-movierental/internal/repository"
)

// ErrMovieAlreadyRented is returned when renting a movie whose rented flag is set.
var ErrMovieAlreadyRented = errors.New("movie already rented")

// MovieStore is the movie persistence the service needs.
type MovieStore interface {
	FindByID(ctx context.Context, id int64) (*model.Movie, error)
	Save(ctx context.Context, m *model.Movie) (*model.Movie, error)
}

// UserStore is the user persistence the service needs.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	DeleteByID(ctx context.Context, id int64) error
}

// RentalStore is the rental persistence the service needs.
type RentalStore interface {
	FindByID(ctx context.Context, id int64) (*model.Rental, error)
	Save(ctx context.Context, r *model.Rental) (*model.Rental, error)
	Delete(ctx context.Context, r *model.Rental) error
}

// EventPublisher delivers rental events, e.g. *queue.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.RentalEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.RentalEvent) error { return nil }

// RentalService coordinates the stores for multi-step rental operations.
// Each step is its own statement; there is no surrounding transaction.
type RentalService struct {
	movies  MovieStore
	users   UserStore
	rentals RentalStore
	events  EventPublisher
	log     *slog.Logger
}

// NewRentalService constructs a RentalService.  A nil publisher disables events.
func NewRentalService(movies MovieStore, users UserStore, rentals RentalStore, events EventPublisher, log *slog.Logger) *RentalService {
	if events == nil {
		events = NopPublisher{}
	}
	return &RentalService{movies: movies, users: users, rentals: rentals, events: events, log: log}
}

// RentMovie records a rental of movieID by userID for days days starting
// today, and marks the movie as rented.
func (s *RentalService) RentMovie(ctx context.Context, userID, movieID int64, days int) (*model.Rental, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie.Rented() {
		return nil, fmt.Errorf("%w: %q", ErrMovieAlreadyRented, movie.Title())
	}
	rental, err := model.NewRental(user, movie, days)
	if err != nil {
		return nil, err
	}
	saved, err := s.rentals.Save(ctx, rental)
	if err != nil {
		return nil, err
	}
	movie.SetRented(true)
	if _, err := s.movies.Save(ctx, movie); err != nil {
		return nil, err
	}
	s.log.Info("movie rented", "rental_id", saved.ID(), "user_id", userID, "movie_id", movieID, "days", days)
	s.publish(ctx, queue.NewRentalEvent(queue.EventRentalCreated, saved))
	return saved, nil
}

// ReturnRental deletes the rental and clears the movie's rented flag.
func (s *RentalService) ReturnRental(ctx context.Context, rentalID int64) (*model.Rental, error) {
	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if err := s.rentals.Delete(ctx, rental); err != nil {
		return nil, err
	}
	movie := rental.Movie()
	movie.SetRented(false)
	if _, err := s.movies.Save(ctx, movie); err != nil {
		return nil, err
	}
	s.log.Info("rental returned", "rental_id", rentalID, "movie_id", movie.ID())
	s.publish(ctx, queue.NewRentalEvent(queue.EventRentalReturned, rental))
	return rental, nil
}

// DeleteUser removes the user and its rentals and clears the rented flag
// of every movie the user still had.  It reports whether a user was found.
func (s *RentalService) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.users.DeleteByID(ctx, userID); err != nil {
		return false, err
	}
	for _, r := range user.Rentals() {
		movie := r.Movie()
		movie.SetRented(false)
		if _, err := s.movies.Save(ctx, movie); err != nil {
			return true, err
		}
	}
	s.log.Info("user deleted", "user_id", userID, "rentals", len(user.Rentals()))
	s.publish(ctx, queue.NewUserDeletedEvent(userID))
	return true, nil
}

func (s *RentalService) publish(ctx context.Context, ev queue.RentalEvent) {
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish rental event failed", "type", ev.Type, "err", err)
	}
}
