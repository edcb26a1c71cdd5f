// Package queue defines the rental events exchanged over RabbitMQ and the
// publisher and consumer that move them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/haisi/eaf-movierental/internal/model"
)

// RentalQueueName is the durable queue all rental events go through.
const RentalQueueName = "rental.events"

// Event types.
const (
	EventRentalCreated  = "rental.created"
	EventRentalReturned = "rental.returned"
	EventUserDeleted    = "user.deleted"
)

// RentalEvent is published after a rental is created or returned, or a
// user is deleted.  It carries enough for consumers to log or notify
// without querying the database.
type RentalEvent struct {
	EventID    string  `json:"event_id"`
	Type       string  `json:"type"`
	RentalID   int64   `json:"rental_id,omitempty"`
	UserID     int64   `json:"user_id"`
	MovieID    int64   `json:"movie_id,omitempty"`
	MovieTitle string  `json:"movie_title,omitempty"`
	RentalDays int     `json:"rental_days,omitempty"`
	Charge     float64 `json:"charge,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}

// NewRentalEvent describes r under the given event type.
func NewRentalEvent(typ string, r *model.Rental) RentalEvent {
	return RentalEvent{
		EventID:    uuid.NewString(),
		Type:       typ,
		RentalID:   r.ID(),
		UserID:     r.User().ID(),
		MovieID:    r.Movie().ID(),
		MovieTitle: r.Movie().Title(),
		RentalDays: r.RentalDays(),
		Charge:     r.Charge(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewUserDeletedEvent describes the removal of a user and its rentals.
func NewUserDeletedEvent(userID int64) RentalEvent {
	return RentalEvent{
		EventID:    uuid.NewString(),
		Type:       EventUserDeleted,
		UserID:     userID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
