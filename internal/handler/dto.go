package handler

import (
	"github.com/haisi/eaf-movierental/internal/model"
	"github.com/haisi/eaf-movierental/internal/service"
)

const dateLayout = "2006-01-02"

type priceCategoryDTO struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type movieDTO struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	ReleaseDate   string           `json:"release_date"`
	Rented        bool             `json:"rented"`
	PriceCategory priceCategoryDTO `json:"price_category"`
}

type userDTO struct {
	ID        int64       `json:"id"`
	LastName  string      `json:"last_name"`
	FirstName string      `json:"first_name"`
	Email     string      `json:"email,omitempty"`
	Rentals   []rentalDTO `json:"rentals"`
}

// rentalDTO refers to its user by id only; the user's own DTO embeds rentals.
type rentalDTO struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"user_id"`
	Movie      movieDTO `json:"movie"`
	RentalDate string   `json:"rental_date"`
	RentalDays int      `json:"rental_days"`
	Charge     float64  `json:"charge"`
}

type statementDTO struct {
	User        userDTO                 `json:"user"`
	Lines       []service.StatementLine `json:"lines"`
	TotalCharge float64                 `json:"total_charge"`
	TotalPoints int                     `json:"total_points"`
}

func toPriceCategory(c *model.PriceCategory) priceCategoryDTO {
	return priceCategoryDTO{ID: c.ID(), Type: c.Kind().String()}
}

func toMovie(m *model.Movie) movieDTO {
	return movieDTO{
		ID:            m.ID(),
		Title:         m.Title(),
		ReleaseDate:   m.ReleaseDate().Format(dateLayout),
		Rented:        m.Rented(),
		PriceCategory: toPriceCategory(m.PriceCategory()),
	}
}

func toRental(r *model.Rental) rentalDTO {
	return rentalDTO{
		ID:         r.ID(),
		UserID:     r.User().ID(),
		Movie:      toMovie(r.Movie()),
		RentalDate: r.RentalDate().Format(dateLayout),
		RentalDays: r.RentalDays(),
		Charge:     r.Charge(),
	}
}

func toUser(u *model.User) userDTO {
	out := userDTO{ID: u.ID(), LastName: u.LastName(), FirstName: u.FirstName(), Email: u.Email(), Rentals: []rentalDTO{}}
	for _, r := range u.Rentals() {
		out.Rentals = append(out.Rentals, toRental(r))
	}
	return out
}

func mapSlice[T, D any](items []T, f func(T) D) []D {
	out := make([]D, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
