package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/middleware"
	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/queue"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// EventHandler exposes the seat lifecycle operations over HTTP.  All
// business rules live in the service layer; handlers only bind input,
// resolve the caller from context and translate domain errors into HTTP
// status codes.
type EventHandler struct {
	Service *service.EventService
}

// NewEventHandler constructs an EventHandler.  The service must be non-nil.
func NewEventHandler(svc *service.EventService) *EventHandler {
	if svc == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{Service: svc}
}

// createEventRequest is the body of POST /v1alpha1/events.
type createEventRequest struct {
	Name          string `json:"name"`
	NumberOfSeats int    `json:"numberOfSeats"`
}

// CreateEvent handles POST /v1alpha1/events.  It creates an event
// together with its full seat set and returns the created event with a
// 201 status.  A blank name or an out-of-range seat count yields 400.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var body createEventRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	event, err := h.Service.CreateEvent(c.Request().Context(), body.Name, body.NumberOfSeats)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

// GetAvailableSeats handles GET /v1alpha1/events/:eventId/seats.  It
// returns every seat of the event that has no active hold or reservation.
// An unknown event returns an empty list, not 404.
func (h *EventHandler) GetAvailableSeats(c echo.Context) error {
	seats, err := h.Service.AvailableSeats(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

// HoldSeat handles POST /v1alpha1/events/:eventId/seats/:seatId/hold.  On
// success the seat is held for the caller until the configured TTL
// elapses or the hold is converted into a reservation, and 204 is
// returned.  An unavailable or unknown seat yields 404.
func (h *EventHandler) HoldSeat(c echo.Context) error {
	err := h.Service.HoldSeat(
		c.Request().Context(),
		middleware.CurrentUser(c),
		c.Param("eventId"),
		c.Param("seatId"),
	)
	if err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReserveSeat handles POST /v1alpha1/events/:eventId/seats/:seatId/reserve.
// It converts the caller's pending hold into a permanent reservation and
// returns 204.  A seat not held by the caller yields 404.  On success a
// seat.reserved event is published best-effort; publish failures never
// fail the request.
func (h *EventHandler) ReserveSeat(c echo.Context) error {
	userID := middleware.CurrentUser(c)
	eventID := c.Param("eventId")
	seatID := c.Param("seatId")
	if err := h.Service.ReserveSeat(c.Request().Context(), userID, eventID, seatID); err != nil {
		return domainError(c, err)
	}
	go func() {
		_ = queue.PublishSeatReserved(queue.SeatReservedEvent{
			EventID:    eventID,
			SeatID:     seatID,
			UserID:     userID,
			ReservedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
	return c.NoContent(http.StatusNoContent)
}

// GetMyReservations handles GET /v1alpha1/events/:eventId/reservations.
// It returns the IDs of the seats the caller has reserved for the event.
func (h *EventHandler) GetMyReservations(c echo.Context) error {
	seatIDs, err := h.Service.UserReservations(
		c.Request().Context(),
		middleware.CurrentUser(c),
		c.Param("eventId"),
	)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"seat_ids": seatIDs})
}

// domainError maps a service error onto the HTTP error contract.  Domain
// sentinels keep their meaning; anything else is an internal failure and
// is reported without store-specific detail.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidSeatCount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, model.ErrSeatNotAvailable), errors.Is(err, model.ErrSeatNotHeld):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
