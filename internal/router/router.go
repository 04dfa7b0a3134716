package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/handler"
	"github.com/iliyamo/event-seat-reservation/internal/middleware"
)

// RegisterRoutes wires every endpoint of the API onto the provided Echo
// instance.  The Identity middleware runs globally so any route can read
// the caller's decoded user ID; RequireUser guards only the endpoints
// that mutate seat state or read per-user data.  rateLimit wraps the
// mutating endpoints and may be a pass-through when limiting is disabled.
func RegisterRoutes(e *echo.Echo, h *handler.EventHandler, rateLimit echo.MiddlewareFunc) {
	e.Use(middleware.Identity())

	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	g := e.Group("/v1alpha1")

	// Event creation and the availability view are public.
	g.POST("/events", h.CreateEvent)
	g.GET("/events/:eventId/seats", h.GetAvailableSeats)

	// Hold and reserve require an authenticated caller and are rate
	// limited per user/ip/route.
	g.POST("/events/:eventId/seats/:seatId/hold", h.HoldSeat, middleware.RequireUser(), rateLimit)
	g.POST("/events/:eventId/seats/:seatId/reserve", h.ReserveSeat, middleware.RequireUser(), rateLimit)

	// A caller can list the seats they reserved for an event.
	g.GET("/events/:eventId/reservations", h.GetMyReservations, middleware.RequireUser())
}
