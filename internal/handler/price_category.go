package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haisi/eaf-movierental/internal/model"
)

// ListPriceCategories handles GET /v1/price-categories.
func (h *Handler) ListPriceCategories(c echo.Context) error {
	items, err := h.Stores.PriceCategories.FindAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": mapSlice(items, toPriceCategory)})
}

// GetPriceCategory handles GET /v1/price-categories/:id.
func (h *Handler) GetPriceCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	pc, err := h.Stores.PriceCategories.FindByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPriceCategory(pc))
}

// CreatePriceCategory handles POST /v1/price-categories with {"type": "Regular"}.
func (h *Handler) CreatePriceCategory(c echo.Context) error {
	var body struct {
		Type string `json:"type" validate:"required"`
	}
	if err := h.bind(c, &body); err != nil {
		return badRequest(c, err.Error())
	}
	kind, err := model.ParseKind(body.Type)
	if err != nil {
		return h.fail(c, err)
	}
	pc, err := model.NewPriceCategory(kind)
	if err != nil {
		return h.fail(c, err)
	}
	saved, err := h.Stores.PriceCategories.Save(c.Request().Context(), pc)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toPriceCategory(saved))
}

// DeletePriceCategory handles DELETE /v1/price-categories/:id.
func (h *Handler) DeletePriceCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Stores.PriceCategories.DeleteByID(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
