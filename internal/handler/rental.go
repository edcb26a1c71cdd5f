package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListRentals handles GET /v1/rentals.
func (h *Handler) ListRentals(c echo.Context) error {
	items, err := h.Stores.Rentals.FindAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": mapSlice(items, toRental)})
}

// GetRental handles GET /v1/rentals/:id.
func (h *Handler) GetRental(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	r, err := h.Stores.Rentals.FindByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toRental(r))
}

// CreateRental handles POST /v1/rentals and rents a movie to a user.
func (h *Handler) CreateRental(c echo.Context) error {
	var body struct {
		UserID     int64 `json:"user_id" validate:"required,gt=0"`
		MovieID    int64 `json:"movie_id" validate:"required,gt=0"`
		RentalDays *int  `json:"rental_days" validate:"required,gte=0"`
	}
	if err := h.bind(c, &body); err != nil {
		return badRequest(c, err.Error())
	}
	r, err := h.Rentals.RentMovie(c.Request().Context(), body.UserID, body.MovieID, *body.RentalDays)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toRental(r))
}

// ReturnRental handles DELETE /v1/rentals/:id.
func (h *Handler) ReturnRental(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if _, err := h.Rentals.ReturnRental(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
