package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/store"
)

// Key layout, one namespace per event plus one per (user, event):
//
//	events/{eventId}                          event metadata (JSON)
//	events/{eventId}/seats                    set of seat records (JSON members)
//	events/{eventId}/reserved-seats/{seatId}  hold record (JSON), TTL while pending
//	users/{userId}/events/{eventId}/seats     set of seat IDs reserved by the user
//
// The hold key carries the store-native TTL while the hold is pending and
// loses it when the hold is converted into a reservation, so a seat's
// status is fully derived from this key's presence and expiry kind.

// seatRecord is the serialized form of a seat inside the event seat set.
// The event ID is implicit in the set key and not repeated per member.
type seatRecord struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
}

// EventRepo provides data access for events, seats and holds.  It contains
// no business rules: legality of a transition is decided by the service
// layer, the repo only issues the corresponding store operations.
type EventRepo struct {
	store store.LeaseStore
}

// NewEventRepo returns an EventRepo bound to the provided lease store.
func NewEventRepo(s store.LeaseStore) *EventRepo {
	if s == nil {
		panic("nil lease store passed to NewEventRepo")
	}
	return &EventRepo{store: s}
}

func eventKey(eventID string) string {
	return "events/" + eventID
}

func eventSeatsKey(eventID string) string {
	return "events/" + eventID + "/seats"
}

func heldSeatKey(eventID, seatID string) string {
	return "events/" + eventID + "/reserved-seats/" + seatID
}

func heldSeatPrefix(eventID string) string {
	return "events/" + eventID + "/reserved-seats/"
}

func userReservationsKey(userID, eventID string) string {
	return "users/" + userID + "/events/" + eventID + "/seats"
}

// CreateEvent persists the event metadata and its full seat set.  Both
// writes are attempted in order; there is no cross-key transaction, so a
// failure between them can leave metadata without seats, which the caller
// maps to an internal error.
func (r *EventRepo) CreateEvent(ctx context.Context, event model.Event, seats []model.Seat) error {
	meta, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := r.store.Set(ctx, eventKey(event.ID), string(meta)); err != nil {
		return err
	}
	members := make([]string, 0, len(seats))
	for _, seat := range seats {
		b, err := json.Marshal(seatRecord{ID: seat.ID, Number: seat.Number})
		if err != nil {
			return fmt.Errorf("marshal seat: %w", err)
		}
		members = append(members, string(b))
	}
	return r.store.SAdd(ctx, eventSeatsKey(event.ID), members...)
}

// GetEvent loads the event metadata, or ErrEventNotFound.
func (r *EventRepo) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	raw, err := r.store.Get(ctx, eventKey(eventID))
	if err != nil {
		if err == store.ErrKeyNotFound {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, err
	}
	var event model.Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return model.Event{}, fmt.Errorf("unmarshal event %s: %w", eventID, err)
	}
	return event, nil
}

// GetSeats returns every seat of the event, in no particular order.  An
// unknown event yields an empty slice because its seat set simply does
// not exist in the store.
func (r *EventRepo) GetSeats(ctx context.Context, eventID string) ([]model.Seat, error) {
	members, err := r.store.SMembers(ctx, eventSeatsKey(eventID))
	if err != nil {
		return nil, err
	}
	seats := make([]model.Seat, 0, len(members))
	for _, m := range members {
		var rec seatRecord
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal seat member %q: %w", m, err)
		}
		seats = append(seats, model.Seat{ID: rec.ID, Number: rec.Number, EventID: eventID})
	}
	return seats, nil
}

// HeldSeatIDs enumerates the seat IDs that currently have a hold record,
// pending or permanent, by scanning the event's hold-key prefix.  The
// seat ID is the final path segment of each key.
func (r *EventRepo) HeldSeatIDs(ctx context.Context, eventID string) ([]string, error) {
	prefix := heldSeatPrefix(eventID)
	keys, err := r.store.ScanPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// CreateHold atomically writes a pending hold for the seat with the given
// TTL.  It returns false when a hold record already exists, which is the
// signal the service layer turns into a seat-not-available rejection.  No
// separate availability read precedes the write; the conditional set is
// the availability check.
func (r *EventRepo) CreateHold(ctx context.Context, eventID, seatID string, hold model.Hold, ttl time.Duration) (bool, error) {
	b, err := json.Marshal(hold)
	if err != nil {
		return false, fmt.Errorf("marshal hold: %w", err)
	}
	return r.store.SetIfAbsent(ctx, heldSeatKey(eventID, seatID), string(b), ttl)
}

// GetHold loads the hold record for the seat, or ErrHoldNotFound when no
// live record exists.
func (r *EventRepo) GetHold(ctx context.Context, eventID, seatID string) (model.Hold, error) {
	raw, err := r.store.Get(ctx, heldSeatKey(eventID, seatID))
	if err != nil {
		if err == store.ErrKeyNotFound {
			return model.Hold{}, ErrHoldNotFound
		}
		return model.Hold{}, err
	}
	var hold model.Hold
	if err := json.Unmarshal([]byte(raw), &hold); err != nil {
		return model.Hold{}, fmt.Errorf("unmarshal hold %s/%s: %w", eventID, seatID, err)
	}
	return hold, nil
}

// PersistHold clears the TTL of the seat's hold record, making it the
// permanent reservation.  It returns false when no TTL was removed, which
// covers both an expired hold and one that is already permanent; the
// service layer re-reads the record to tell those apart.
func (r *EventRepo) PersistHold(ctx context.Context, eventID, seatID string) (bool, error) {
	return r.store.Persist(ctx, heldSeatKey(eventID, seatID))
}

// AddUserReservation records the seat in the user's per-event reservation
// set for later lookup.
func (r *EventRepo) AddUserReservation(ctx context.Context, userID, eventID, seatID string) error {
	return r.store.SAdd(ctx, userReservationsKey(userID, eventID), seatID)
}

// UserReservations returns the seat IDs the user has reserved for the
// event.  A user with no reservations yields an empty slice.
func (r *EventRepo) UserReservations(ctx context.Context, userID, eventID string) ([]string, error) {
	return r.store.SMembers(ctx, userReservationsKey(userID, eventID))
}
