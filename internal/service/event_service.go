// Package service contains the seat lifecycle engine. It decides whether a
// hold or reservation request is legal given current store state and issues
// the corresponding repository mutations. The engine keeps no in-process
// mutable state; all coordination lives in the lease store, so instances
// are stateless and can be replicated freely.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// EventService implements the event/seat operation surface consumed by the
// transport layer: create event, list available seats, hold seat, reserve
// seat and list a user's reservations.
type EventService struct {
	repo    *repository.EventRepo
	holdTTL time.Duration
}

// NewEventService constructs an EventService.  holdTTL is the lifetime of
// a pending hold; values below one second fall back to the 60s default
// since the store expires keys at whole-second granularity.
func NewEventService(repo *repository.EventRepo, holdTTL time.Duration) *EventService {
	if repo == nil {
		panic("nil repository passed to NewEventService")
	}
	if holdTTL < time.Second {
		holdTTL = 60 * time.Second
	}
	return &EventService{repo: repo, holdTTL: holdTTL}
}

// CreateEvent validates the requested seat count, generates the event and
// its full seat set (numbers 1..totalSeats, fresh UUIDs) and persists them
// as one logical unit.  The bound check runs here even though the
// transport validates input too, so out-of-range values can never reach
// the store.
func (s *EventService) CreateEvent(ctx context.Context, name string, totalSeats int) (model.Event, error) {
	if totalSeats < model.MinSeats || totalSeats > model.MaxSeats {
		return model.Event{}, model.ErrInvalidSeatCount
	}
	event := model.Event{
		ID:         uuid.NewString(),
		Name:       name,
		TotalSeats: totalSeats,
	}
	seats := make([]model.Seat, 0, totalSeats)
	for n := 1; n <= totalSeats; n++ {
		seats = append(seats, model.Seat{
			ID:      uuid.NewString(),
			Number:  n,
			EventID: event.ID,
		})
	}
	if err := s.repo.CreateEvent(ctx, event, seats); err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// AvailableSeats returns the seats of the event that currently have no
// hold record, pending or permanent.  The view is recomputed on every
// call from the seat set minus the held-seat enumeration; nothing is
// cached, so the result is as consistent as the store's point-in-time
// reads.  An unknown event yields an empty list rather than an error.
func (s *EventService) AvailableSeats(ctx context.Context, eventID string) ([]model.Seat, error) {
	seats, err := s.repo.GetSeats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	heldIDs, err := s.repo.HeldSeatIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list held seats: %w", err)
	}
	held := make(map[string]struct{}, len(heldIDs))
	for _, id := range heldIDs {
		held[id] = struct{}{}
	}
	available := make([]model.Seat, 0, len(seats))
	for _, seat := range seats {
		if _, ok := held[seat.ID]; !ok {
			available = append(available, seat)
		}
	}
	return available, nil
}

// HoldSeat places a pending hold on the seat for the user.  The seat must
// belong to the event and must not carry any hold record.  The hold write
// itself is a single atomic create-if-absent with TTL, so two concurrent
// holders cannot both succeed: the loser's conditional write observes the
// winner's key and is rejected with ErrSeatNotAvailable.  The same error
// covers an unknown event or seat.
func (s *EventService) HoldSeat(ctx context.Context, userID, eventID, seatID string) error {
	if userID == "" {
		return model.ErrUnauthorized
	}
	seats, err := s.repo.GetSeats(ctx, eventID)
	if err != nil {
		return fmt.Errorf("hold seat: %w", err)
	}
	if !seatExists(seats, seatID) {
		return model.ErrSeatNotAvailable
	}
	hold := model.Hold{
		ID:           uuid.NewString(),
		UserID:       userID,
		HeldAt:       time.Now().UTC(),
		ExpiresAfter: int64(s.holdTTL / time.Second),
	}
	created, err := s.repo.CreateHold(ctx, eventID, seatID, hold, s.holdTTL)
	if err != nil {
		return fmt.Errorf("hold seat: %w", err)
	}
	if !created {
		return model.ErrSeatNotAvailable
	}
	return nil
}

// ReserveSeat converts the user's pending hold into a permanent
// reservation by clearing the hold's expiry and recording the seat
// against the user.  A missing hold and a hold owned by someone else both
// yield ErrSeatNotHeld, leaving store state untouched.  Re-reserving an
// already reserved seat by its holder is a no-op success: persisting a
// key without TTL changes nothing.
func (s *EventService) ReserveSeat(ctx context.Context, userID, eventID, seatID string) error {
	if userID == "" {
		return model.ErrUnauthorized
	}
	hold, err := s.repo.GetHold(ctx, eventID, seatID)
	if err != nil {
		if err == repository.ErrHoldNotFound {
			return model.ErrSeatNotHeld
		}
		return fmt.Errorf("reserve seat: %w", err)
	}
	if hold.UserID != userID {
		return model.ErrSeatNotHeld
	}
	persisted, err := s.repo.PersistHold(ctx, eventID, seatID)
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if !persisted {
		// Persist reports false both when the hold expired between the
		// read above and now, and when the hold is already permanent.
		// Re-read to tell the two apart: a vanished key means the TTL won
		// the race, and a key now owned by someone else means the seat was
		// re-held in the gap. Either way the seat is not held by this user.
		current, err := s.repo.GetHold(ctx, eventID, seatID)
		if err != nil {
			if err == repository.ErrHoldNotFound {
				return model.ErrSeatNotHeld
			}
			return fmt.Errorf("reserve seat: %w", err)
		}
		if current.UserID != userID {
			return model.ErrSeatNotHeld
		}
	}
	if err := s.repo.AddUserReservation(ctx, userID, eventID, seatID); err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	return nil
}

// UserReservations returns the seat IDs the user has reserved for the
// event.  This is read-only bookkeeping over the reservation set written
// by ReserveSeat.
func (s *EventService) UserReservations(ctx context.Context, userID, eventID string) ([]string, error) {
	if userID == "" {
		return nil, model.ErrUnauthorized
	}
	ids, err := s.repo.UserReservations(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return ids, nil
}

func seatExists(seats []model.Seat, seatID string) bool {
	for _, seat := range seats {
		if seat.ID == seatID {
			return true
		}
	}
	return false
}
