package handler // handler exposes the rental stores over HTTP

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/haisi/eaf-movierental/internal/model"
	"github.com/haisi/eaf-movierental/internal/repository"
	"github.com/haisi/eaf-movierental/internal/service"
)

// Handler bundles the stores and the rental service behind the API.
type Handler struct {
	Stores  *repository.Stores
	Rentals *service.RentalService
	Log     *slog.Logger
	V       *validator.Validate
}

// New constructs a Handler and panics if a dependency is missing.
func New(stores *repository.Stores, rentals *service.RentalService, log *slog.Logger) *Handler {
	if stores == nil || rentals == nil || log == nil {
		panic("nil dependency passed to handler.New")
	}
	return &Handler{Stores: stores, Rentals: rentals, Log: log, V: validator.New()}
}

// bind decodes the request body into v and checks its validate tags.
func (h *Handler) bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return errors.New("invalid request body")
	}
	return h.V.Struct(v)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

// fail maps store and service errors onto HTTP statuses.
func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidArgument),
		errors.Is(err, model.ErrInvalidMovie),
		errors.Is(err, model.ErrInvalidUser),
		errors.Is(err, model.ErrInvalidRental),
		errors.Is(err, model.ErrUnknownKind):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrMovieAlreadyRented),
		errors.Is(err, repository.ErrReferenced):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	h.Log.Error("request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
