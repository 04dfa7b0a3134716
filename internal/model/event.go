package model

// Event describes a ticketed event.  An event is created once with a
// fixed number of seats and is immutable afterwards; the seat set never
// grows or shrinks.
//
// Fields:
//  ID         – opaque identifier in UUID format, generated server-side.
//  Name       – human readable name of the event.
//  TotalSeats – number of seats created with the event (10..1000).
type Event struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TotalSeats int    `json:"totalSeats"`
}

// MinSeats and MaxSeats bound the number of seats an event may be
// created with.  Values outside this range are rejected with
// ErrInvalidSeatCount before any store write happens.
const (
	MinSeats = 10
	MaxSeats = 1000
)
