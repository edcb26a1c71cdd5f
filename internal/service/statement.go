package service

import (
	"context"

	"github.com/haisi/eaf-movierental/internal/model"
)

// StatementLine is one rental on a customer statement.
type StatementLine struct {
	RentalID   int64   `json:"rental_id"`
	MovieTitle string  `json:"movie_title"`
	Category   string  `json:"category"`
	Days       int     `json:"days"`
	Charge     float64 `json:"charge"`
	Points     int     `json:"points"`
}

// Statement sums up a user's current rentals.
type Statement struct {
	User        *model.User
	Lines       []StatementLine
	TotalCharge float64
	TotalPoints int
}

// Statement builds the statement for userID from its loaded rentals.
func (s *RentalService) Statement(ctx context.Context, userID int64) (*Statement, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := &Statement{User: user}
	for _, r := range user.Rentals() {
		line := StatementLine{
			RentalID:   r.ID(),
			MovieTitle: r.Movie().Title(),
			Category:   r.Movie().PriceCategory().String(),
			Days:       r.RentalDays(),
			Charge:     r.Charge(),
			Points:     r.FrequentRenterPoints(),
		}
		st.Lines = append(st.Lines, line)
		st.TotalCharge += line.Charge
		st.TotalPoints += line.Points
	}
	return st, nil
}
