package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
	"github.com/iliyamo/event-seat-reservation/internal/store"
)

// newTestService wires the engine to an in-memory lease store that honors
// the same conditional-set contract as Redis. The returned store's clock
// can be advanced to trigger hold expiry without sleeping.
func newTestService(ttl time.Duration) (*EventService, *store.Memory) {
	mem := store.NewMemory()
	return NewEventService(repository.NewEventRepo(mem), ttl), mem
}

func mustCreateEvent(t *testing.T, svc *EventService, name string, totalSeats int) model.Event {
	t.Helper()
	event, err := svc.CreateEvent(context.Background(), name, totalSeats)
	require.NoError(t, err)
	return event
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Minute)

	t.Run("rejects out-of-range seat counts", func(t *testing.T) {
		for _, n := range []int{-1, 0, 9, 1001, 5000} {
			_, err := svc.CreateEvent(ctx, "Marathon", n)
			assert.ErrorIs(t, err, model.ErrInvalidSeatCount, "totalSeats=%d", n)
		}
	})

	t.Run("creates the full seat set with contiguous numbers", func(t *testing.T) {
		event := mustCreateEvent(t, svc, "Marathon", 15)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "Marathon", event.Name)
		assert.Equal(t, 15, event.TotalSeats)

		seats, err := svc.AvailableSeats(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, seats, 15)

		numbers := make([]int, 0, len(seats))
		ids := make(map[string]struct{})
		for _, seat := range seats {
			assert.Equal(t, event.ID, seat.EventID)
			numbers = append(numbers, seat.Number)
			ids[seat.ID] = struct{}{}
		}
		sort.Ints(numbers)
		for i, n := range numbers {
			assert.Equal(t, i+1, n)
		}
		assert.Len(t, ids, 15, "seat IDs must be unique")
	})

	t.Run("accepts the boundary seat counts", func(t *testing.T) {
		small := mustCreateEvent(t, svc, "Small", model.MinSeats)
		assert.Equal(t, model.MinSeats, small.TotalSeats)
		large := mustCreateEvent(t, svc, "Large", model.MaxSeats)
		assert.Equal(t, model.MaxSeats, large.TotalSeats)
	})
}

func TestAvailableSeatsUnknownEvent(t *testing.T) {
	svc, _ := newTestService(time.Minute)
	seats, err := svc.AvailableSeats(context.Background(), "no-such-event")
	require.NoError(t, err)
	assert.Empty(t, seats)
}

func TestHoldSeat(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Minute)
	event := mustCreateEvent(t, svc, "Marathon", 15)
	seats, err := svc.AvailableSeats(ctx, event.ID)
	require.NoError(t, err)
	seat := seats[0]

	t.Run("requires a user", func(t *testing.T) {
		err := svc.HoldSeat(ctx, "", event.ID, seat.ID)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("rejects unknown event and seat", func(t *testing.T) {
		err := svc.HoldSeat(ctx, "alice", "no-such-event", seat.ID)
		assert.ErrorIs(t, err, model.ErrSeatNotAvailable)
		err = svc.HoldSeat(ctx, "alice", event.ID, "no-such-seat")
		assert.ErrorIs(t, err, model.ErrSeatNotAvailable)
	})

	t.Run("held seat leaves the available view", func(t *testing.T) {
		require.NoError(t, svc.HoldSeat(ctx, "alice", event.ID, seat.ID))

		available, err := svc.AvailableSeats(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, available, 14)
		for _, s := range available {
			assert.NotEqual(t, seat.ID, s.ID)
		}
	})

	t.Run("held seat cannot be held again", func(t *testing.T) {
		err := svc.HoldSeat(ctx, "bob", event.ID, seat.ID)
		assert.ErrorIs(t, err, model.ErrSeatNotAvailable)
		// Not even by the current holder.
		err = svc.HoldSeat(ctx, "alice", event.ID, seat.ID)
		assert.ErrorIs(t, err, model.ErrSeatNotAvailable)
	})
}

// Two concurrent holders must never both succeed: the conditional hold
// write admits exactly one winner and every loser observes the
// not-available rejection.
func TestHoldSeatMutualExclusion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Minute)
	event := mustCreateEvent(t, svc, "Marathon", 10)
	seats, err := svc.AvailableSeats(ctx, event.ID)
	require.NoError(t, err)
	seatID := seats[0].ID

	const holders = 32
	errs := make([]error, holders)
	var wg sync.WaitGroup
	for i := 0; i < holders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.HoldSeat(ctx, fmt.Sprintf("user-%d", i), event.ID, seatID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, model.ErrSeatNotAvailable)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestHoldExpiry(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(time.Second)
	now := time.Now()
	mem.Now = func() time.Time { return now }

	event := mustCreateEvent(t, svc, "Marathon", 15)
	seats, err := svc.AvailableSeats(ctx, event.ID)
	require.NoError(t, err)
	seatID := seats[0].ID

	require.NoError(t, svc.HoldSeat(ctx, "alice", event.ID, seatID))
	available, err := svc.AvailableSeats(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, available, 14)

	// Past the TTL the store drops the hold on its own and the seat
	// reappears.
	now = now.Add(2 * time.Second)
	available, err = svc.AvailableSeats(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, available, 15)

	// The expired hold no longer blocks a new holder.
	require.NoError(t, svc.HoldSeat(ctx, "bob", event.ID, seatID))

	// But it can no longer be reserved by the previous holder.
	err = svc.ReserveSeat(ctx, "alice", event.ID, seatID)
	assert.ErrorIs(t, err, model.ErrSeatNotHeld)
}

func TestReserveSeat(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(time.Second)
	now := time.Now()
	mem.Now = func() time.Time { return now }

	event := mustCreateEvent(t, svc, "Marathon", 15)
	seats, err := svc.AvailableSeats(ctx, event.ID)
	require.NoError(t, err)
	seatID := seats[0].ID

	t.Run("requires a user", func(t *testing.T) {
		err := svc.ReserveSeat(ctx, "", event.ID, seatID)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("rejects a seat nobody holds", func(t *testing.T) {
		err := svc.ReserveSeat(ctx, "alice", event.ID, seatID)
		assert.ErrorIs(t, err, model.ErrSeatNotHeld)
	})

	require.NoError(t, svc.HoldSeat(ctx, "alice", event.ID, seatID))

	t.Run("rejects a foreign holder and leaves the hold intact", func(t *testing.T) {
		err := svc.ReserveSeat(ctx, "bob", event.ID, seatID)
		assert.ErrorIs(t, err, model.ErrSeatNotHeld)

		// The seat is still held by alice, not released or transferred.
		available, err := svc.AvailableSeats(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, available, 14)
		reserved, err := svc.UserReservations(ctx, "bob", event.ID)
		require.NoError(t, err)
		assert.Empty(t, reserved)
	})

	t.Run("converts the hold into a permanent reservation", func(t *testing.T) {
		require.NoError(t, svc.ReserveSeat(ctx, "alice", event.ID, seatID))

		reserved, err := svc.UserReservations(ctx, "alice", event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{seatID}, reserved)

		// The original TTL window elapsing no longer matters.
		now = now.Add(time.Hour)
		available, err := svc.AvailableSeats(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, available, 14)
	})

	t.Run("re-reserving by the holder is a no-op success", func(t *testing.T) {
		require.NoError(t, svc.ReserveSeat(ctx, "alice", event.ID, seatID))
		reserved, err := svc.UserReservations(ctx, "alice", event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{seatID}, reserved)
	})

	t.Run("reserved is terminal", func(t *testing.T) {
		err := svc.HoldSeat(ctx, "bob", event.ID, seatID)
		assert.ErrorIs(t, err, model.ErrSeatNotAvailable)
		err = svc.ReserveSeat(ctx, "bob", event.ID, seatID)
		assert.ErrorIs(t, err, model.ErrSeatNotHeld)
	})
}

func TestUserReservations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Minute)
	event := mustCreateEvent(t, svc, "Marathon", 10)

	_, err := svc.UserReservations(ctx, "", event.ID)
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	reserved, err := svc.UserReservations(ctx, "alice", event.ID)
	require.NoError(t, err)
	assert.Empty(t, reserved)
}
