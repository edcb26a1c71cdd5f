package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haisi/eaf-movierental/internal/model"
)

// ListUsers handles GET /v1/users.  At most one of ?last_name=,
// ?first_name= or ?email= is applied, in that order.
func (h *Handler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	users := h.Stores.Users
	var (
		items []*model.User
		err   error
	)
	switch {
	case c.QueryParam("last_name") != "":
		items, err = users.FindByLastName(ctx, c.QueryParam("last_name"))
	case c.QueryParam("first_name") != "":
		items, err = users.FindByFirstName(ctx, c.QueryParam("first_name"))
	case c.QueryParam("email") != "":
		items, err = users.FindByEmail(ctx, c.QueryParam("email"))
	default:
		items, err = users.FindAll(ctx)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": mapSlice(items, toUser)})
}

// GetUser handles GET /v1/users/:id.
func (h *Handler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	u, err := h.Stores.Users.FindByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toUser(u))
}

// CreateUser handles POST /v1/users.
func (h *Handler) CreateUser(c echo.Context) error {
	var body struct {
		LastName  string `json:"last_name" validate:"required"`
		FirstName string `json:"first_name" validate:"required"`
		Email     string `json:"email" validate:"omitempty,email"`
	}
	if err := h.bind(c, &body); err != nil {
		return badRequest(c, err.Error())
	}
	u, err := model.NewUser(body.LastName, body.FirstName)
	if err != nil {
		return h.fail(c, err)
	}
	u.SetEmail(body.Email)
	saved, err := h.Stores.Users.Save(c.Request().Context(), u)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toUser(saved))
}

// DeleteUser handles DELETE /v1/users/:id.  The user's rentals go with it.
func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	found, err := h.Rentals.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUserRentals handles GET /v1/users/:id/rentals.
func (h *Handler) ListUserRentals(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	u, err := h.Stores.Users.FindByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": mapSlice(u.Rentals(), toRental)})
}

// GetStatement handles GET /v1/users/:id/statement.
func (h *Handler) GetStatement(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	st, err := h.Rentals.Statement(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	out := statementDTO{User: toUser(st.User), Lines: st.Lines, TotalCharge: st.TotalCharge, TotalPoints: st.TotalPoints}
	return c.JSON(http.StatusOK, out)
}
