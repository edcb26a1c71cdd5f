package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/haisi/eaf-movierental/internal/handler"
)

// RegisterRoutes mounts the health check and the /v1 resource routes.
// The middlewares (rate limit, response cache) wrap /v1 only, in order.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, mw ...echo.MiddlewareFunc) {
	e.GET("/healthz", h.Health)

	g := e.Group("/v1", mw...)

	g.GET("/price-categories", h.ListPriceCategories)
	g.POST("/price-categories", h.CreatePriceCategory)
	g.GET("/price-categories/:id", h.GetPriceCategory)
	g.DELETE("/price-categories/:id", h.DeletePriceCategory)

	g.GET("/movies", h.ListMovies)
	g.POST("/movies", h.CreateMovie)
	g.GET("/movies/:id", h.GetMovie)
	g.PUT("/movies/:id", h.UpdateMovie)
	g.DELETE("/movies/:id", h.DeleteMovie)

	g.GET("/users", h.ListUsers)
	g.POST("/users", h.CreateUser)
	g.GET("/users/:id", h.GetUser)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/users/:id/rentals", h.ListUserRentals)
	g.GET("/users/:id/statement", h.GetStatement)

	g.GET("/rentals", h.ListRentals)
	g.POST("/rentals", h.CreateRental)
	g.GET("/rentals/:id", h.GetRental)
	g.DELETE("/rentals/:id", h.ReturnRental)
}
