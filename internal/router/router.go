// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/film-afisha/backend/internal/handler"
)

// RegisterRoutes mounts the public API under the /api/afisha prefix and
// the health check at the root.  All endpoints are unauthenticated; rate
// limiting and response caching are applied as global middleware in main.
func RegisterRoutes(e *echo.Echo, films *handler.FilmsHandler, orders *handler.OrderHandler) {
	// Health endpoint for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api/afisha")
	// Catalog read side: the film list and per-film schedules including
	// current taken-seat sets.
	api.GET("/films", films.List)
	api.GET("/films/:id/schedule", films.Schedule)
	// Order creation: the seat-reservation workflow.
	api.POST("/order", orders.Create)
}
