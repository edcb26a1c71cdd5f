package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports whether the service can still reach its database.  Load
// balancers poll it; a failed ping answers 503.
func (h *Handler) Health(c echo.Context) error {
	if err := h.Stores.Ping(c.Request().Context()); err != nil {
		h.Log.Warn("health check failed", "err", err)
		return c.String(http.StatusServiceUnavailable, "unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
