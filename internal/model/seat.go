package model

// Seat describes a single numbered seat of an event.  Seats carry no
// stored status; whether a seat is Available, Held or Reserved is derived
// from the presence and kind of the hold record associated with it.
//
// Fields:
//  ID      – opaque identifier in UUID format, generated server-side.
//  Number  – position of the seat within the event, 1..TotalSeats.
//  EventID – event the seat belongs to.
type Seat struct {
	ID      string `json:"id"`
	Number  int    `json:"number"`
	EventID string `json:"eventId"`
}
