// Package model defines the domain entities and the sentinel errors that
// cross layer boundaries. Handlers translate these sentinels into HTTP
// status codes; anything that is not one of them is treated as an internal
// failure and never exposes store-specific failure shapes to callers.
package model

import "errors"

// ErrInvalidSeatCount is returned when an event is created with a seat
// count outside the [MinSeats, MaxSeats] range. Handlers translate this
// into an HTTP 400 response.
var ErrInvalidSeatCount = errors.New("total seats must be between 10 and 1000")

// ErrUnauthorized is returned when a hold or reserve operation is invoked
// without an authenticated user. The check happens before any store
// access. Handlers translate this into an HTTP 401 response.
var ErrUnauthorized = errors.New("unauthorized")

// ErrSeatNotAvailable is returned when a hold is requested for a seat
// that does not exist or already carries a hold record, pending or
// permanent. Handlers translate this into an HTTP 404 response; the
// message deliberately does not reveal whether the seat exists.
var ErrSeatNotAvailable = errors.New("seat not available")

// ErrSeatNotHeld is returned when a reservation is requested for a seat
// with no hold record, or whose hold belongs to a different user. The two
// cases are intentionally indistinguishable to avoid leaking who holds
// what. Handlers translate this into an HTTP 404 response.
var ErrSeatNotHeld = errors.New("seat not held")
