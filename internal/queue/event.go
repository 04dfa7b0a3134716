// Package queue defines the message payloads exchanged over the broker
// along with the publisher and consumer for the seat.reserved queue.
package queue

// seatReservedQueue is the durable queue carrying reservation events.
const seatReservedQueue = "seat.reserved"

// SeatReservedEvent is published when a hold is successfully converted
// into a permanent reservation.  It contains enough information for
// downstream consumers to log or notify without querying the store.
type SeatReservedEvent struct {
	EventID    string `json:"event_id"`
	SeatID     string `json:"seat_id"`
	UserID     string `json:"user_id"`
	ReservedAt string `json:"reserved_at"`
}
