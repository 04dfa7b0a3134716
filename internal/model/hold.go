package model

import "time"

// Hold is the claim a user has on a seat.  A hold exists in one of two
// forms: pending, where the record carries a store-native TTL and vanishes
// on its own when the TTL elapses, and permanent, where the TTL has been
// cleared by a reservation.  At most one hold record exists per
// (event, seat) at any instant; the hold key itself serializes seat
// ownership, so no additional locking is layered on top.
//
// Fields:
//  ID           – opaque hold identifier in UUID format.
//  UserID       – user who placed the hold; only this user may reserve.
//  HeldAt       – UTC timestamp of hold creation.
//  ExpiresAfter – TTL the hold was created with, in whole seconds.
type Hold struct {
	ID           string    `json:"hold_id"`
	UserID       string    `json:"user_id"`
	HeldAt       time.Time `json:"held_at"`
	ExpiresAfter int64     `json:"expires_after_s"`
}
