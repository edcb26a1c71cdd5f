package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/haisi/eaf-movierental/internal/model"
	"github.com/haisi/eaf-movierental/internal/repository"
)

type movieRequest struct {
	Title           string `json:"title" validate:"required"`
	ReleaseDate     string `json:"release_date" validate:"required,datetime=2006-01-02"`
	Rented          bool   `json:"rented"`
	PriceCategoryID int64  `json:"price_category_id" validate:"required,gt=0"`
}

// movieUpdate carries the fields a stored movie may change.
type movieUpdate struct {
	Rented          bool  `json:"rented"`
	PriceCategoryID int64 `json:"price_category_id" validate:"gte=0"`
}

// ListMovies handles GET /v1/movies, optionally filtered by ?title=.
func (h *Handler) ListMovies(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		items []*model.Movie
		err   error
	)
	if title := c.QueryParam("title"); title != "" {
		items, err = h.Stores.Movies.FindByTitle(ctx, title)
	} else {
		items, err = h.Stores.Movies.FindAll(ctx)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": mapSlice(items, toMovie)})
}

// GetMovie handles GET /v1/movies/:id.
func (h *Handler) GetMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	m, err := h.Stores.Movies.FindByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toMovie(m))
}

// CreateMovie handles POST /v1/movies.
func (h *Handler) CreateMovie(c echo.Context) error {
	var body movieRequest
	if err := h.bind(c, &body); err != nil {
		return badRequest(c, err.Error())
	}
	m, err := h.movieFrom(c, body)
	if err != nil {
		return h.fail(c, err)
	}
	saved, err := h.Stores.Movies.Save(c.Request().Context(), m)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toMovie(saved))
}

// UpdateMovie handles PUT /v1/movies/:id.  Title and release date are
// fixed once a movie exists; only the rented flag and category change.
func (h *Handler) UpdateMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body movieUpdate
	if err := h.bind(c, &body); err != nil {
		return badRequest(c, err.Error())
	}
	ctx := c.Request().Context()
	m, err := h.Stores.Movies.FindByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if body.PriceCategoryID != 0 {
		pc, err := h.Stores.PriceCategories.FindByID(ctx, body.PriceCategoryID)
		if err != nil {
			return h.fail(c, err)
		}
		m.SetPriceCategory(pc)
	}
	m.SetRented(body.Rented)
	saved, err := h.Stores.Movies.Save(ctx, m)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toMovie(saved))
}

// DeleteMovie handles DELETE /v1/movies/:id.
func (h *Handler) DeleteMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Stores.Movies.DeleteByID(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) movieFrom(c echo.Context, body movieRequest) (*model.Movie, error) {
	released, err := time.Parse(dateLayout, body.ReleaseDate)
	if err != nil {
		return nil, model.ErrInvalidMovie
	}
	pc, err := h.Stores.PriceCategories.FindByID(c.Request().Context(), body.PriceCategoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: price category %d does not exist", model.ErrInvalidMovie, body.PriceCategoryID)
	}
	if err != nil {
		return nil, err
	}
	return model.RestoreMovie(body.Title, released, body.Rented, pc)
}
