package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/classroom-booking-backend/internal/auth"
	"github.com/campusbook/classroom-booking-backend/internal/classroom"
	"github.com/campusbook/classroom-booking-backend/internal/clock"
)

// stubGate grants everything to known callers; admins additionally manage
// classrooms.
type stubGate struct {
	known  map[string]bool
	admins map[string]bool
}

func (g *stubGate) Authorize(_ context.Context, callerID string, cap auth.Capability) bool {
	if !g.known[callerID] {
		return false
	}
	if cap == auth.CapManageClassrooms {
		return g.admins[callerID]
	}
	return true
}

type schedulerFixture struct {
	sched       *Scheduler
	repo        *MemoryRepository
	catalog     classroom.Service
	classroomID string
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()

	gate := &stubGate{
		known:  map[string]bool{"admin": true, "alice": true, "bob": true},
		admins: map[string]bool{"admin": true},
	}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository()
	catalog := classroom.NewService(classroom.NewMemoryRepository(), gate, repo, clock.NewFixed(now))

	room, err := catalog.Create(context.Background(), "admin", classroom.CreateRequest{
		Name:      "Room 101",
		Capacity:  20,
		Equipment: []string{"Projector"},
	})
	require.NoError(t, err)

	return &schedulerFixture{
		sched:       NewScheduler(repo, catalog, gate),
		repo:        repo,
		catalog:     catalog,
		classroomID: room.ID,
	}
}

func TestSchedulerCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free window", func(t *testing.T) {
		f := newSchedulerFixture(t)

		r, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "alice", r.OwnerID)
		assert.Equal(t, "Room 101", r.ClassroomName)

		stored, err := f.repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, at(t, 10, 0), stored.StartTime)
	})

	t.Run("rejects inverted and empty intervals", func(t *testing.T) {
		f := newSchedulerFixture(t)

		_, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 11, 0), at(t, 10, 0))
		assert.ErrorIs(t, err, ErrInvalidInterval)

		_, err = f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 10, 0))
		assert.ErrorIs(t, err, ErrInvalidInterval)

		assert.Zero(t, f.repo.Len())
	})

	t.Run("rejects unknown classroom", func(t *testing.T) {
		f := newSchedulerFixture(t)

		_, err := f.sched.Create(ctx, "7b6a1b63-96d1-41b7-8c07-7f8594a530c1", "alice", at(t, 10, 0), at(t, 11, 0))
		assert.ErrorIs(t, err, ErrClassroomNotFound)
	})

	t.Run("rejects unknown caller", func(t *testing.T) {
		f := newSchedulerFixture(t)

		_, err := f.sched.Create(ctx, f.classroomID, "mallory", at(t, 10, 0), at(t, 11, 0))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("conflict names the blocking reservation", func(t *testing.T) {
		f := newSchedulerFixture(t)

		first, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)

		_, err = f.sched.Create(ctx, f.classroomID, "bob", at(t, 10, 30), at(t, 11, 30))
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, first.ID, conflict.ReservationID)
		assert.Equal(t, at(t, 10, 0), conflict.StartTime)
		assert.Equal(t, at(t, 11, 0), conflict.EndTime)
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("conflict leaves state unchanged", func(t *testing.T) {
		f := newSchedulerFixture(t)

		_, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)
		before := f.sched.Overlapping(f.classroomID, at(t, 0, 0), at(t, 23, 59))

		_, err = f.sched.Create(ctx, f.classroomID, "bob", at(t, 10, 30), at(t, 11, 30))
		require.ErrorIs(t, err, ErrTimeConflict)

		assert.Equal(t, before, f.sched.Overlapping(f.classroomID, at(t, 0, 0), at(t, 23, 59)))
		assert.Equal(t, 1, f.repo.Len())
	})

	t.Run("adjacent bookings both succeed", func(t *testing.T) {
		f := newSchedulerFixture(t)

		_, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)

		_, err = f.sched.Create(ctx, f.classroomID, "bob", at(t, 11, 0), at(t, 12, 0))
		require.NoError(t, err)
	})

	t.Run("different classrooms do not conflict", func(t *testing.T) {
		f := newSchedulerFixture(t)

		other, err := f.catalog.Create(ctx, "admin", classroom.CreateRequest{
			Name:      "Room 102",
			Capacity:  10,
			Equipment: []string{"Whiteboard"},
		})
		require.NoError(t, err)

		_, err = f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)
		_, err = f.sched.Create(ctx, other.ID, "bob", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)
	})
}

func TestSchedulerConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t)

	// Two overlapping windows raced on the same classroom: exactly one
	// succeeds, the other gets a conflict, regardless of arrival order.
	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = f.sched.Create(ctx, f.classroomID, "bob", at(t, 10, 30), at(t, 11, 30))
	}()
	wg.Wait()

	okCount := 0
	conflictCount := 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, ErrTimeConflict):
			conflictCount++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, conflictCount)
	assert.Equal(t, 1, f.repo.Len())
}

func TestSchedulerDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner frees the interval", func(t *testing.T) {
		f := newSchedulerFixture(t)

		r, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)

		require.NoError(t, f.sched.Delete(ctx, r.ID, "alice"))

		// The freed window is bookable again.
		_, err = f.sched.Create(ctx, f.classroomID, "bob", at(t, 10, 0), at(t, 10, 45))
		require.NoError(t, err)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		f := newSchedulerFixture(t)

		r, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)

		err = f.sched.Delete(ctx, r.ID, "bob")
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = f.repo.GetByID(ctx, r.ID)
		assert.NoError(t, err)
	})

	t.Run("admin may delete any reservation", func(t *testing.T) {
		f := newSchedulerFixture(t)

		r, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)

		require.NoError(t, f.sched.Delete(ctx, r.ID, "admin"))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newSchedulerFixture(t)

		err := f.sched.Delete(ctx, "e3b97a39-46a7-43f5-a1a4-6d2a22e3ddd3", "alice")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSchedulerMove(t *testing.T) {
	ctx := context.Background()

	t.Run("moves within the same classroom", func(t *testing.T) {
		f := newSchedulerFixture(t)

		r, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)

		moved, err := f.sched.Move(ctx, r.ID, "alice", at(t, 13, 0), at(t, 14, 0))
		require.NoError(t, err)
		assert.Equal(t, at(t, 13, 0), moved.StartTime)

		// The old window is free, the new one is booked.
		_, err = f.sched.Create(ctx, f.classroomID, "bob", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)
		_, err = f.sched.Create(ctx, f.classroomID, "bob", at(t, 13, 30), at(t, 14, 30))
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("does not conflict with itself", func(t *testing.T) {
		f := newSchedulerFixture(t)

		r, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)

		_, err = f.sched.Move(ctx, r.ID, "alice", at(t, 10, 30), at(t, 11, 30))
		require.NoError(t, err)
	})

	t.Run("restores the old window on conflict", func(t *testing.T) {
		f := newSchedulerFixture(t)

		r, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)
		blocker, err := f.sched.Create(ctx, f.classroomID, "bob", at(t, 13, 0), at(t, 14, 0))
		require.NoError(t, err)

		_, err = f.sched.Move(ctx, r.ID, "alice", at(t, 13, 30), at(t, 14, 30))
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, blocker.ID, conflict.ReservationID)

		// The original window is still held.
		_, err = f.sched.Create(ctx, f.classroomID, "bob", at(t, 10, 0), at(t, 11, 0))
		assert.ErrorIs(t, err, ErrTimeConflict)

		stored, err := f.repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, at(t, 10, 0), stored.StartTime)
	})

	t.Run("only owner or admin may move", func(t *testing.T) {
		f := newSchedulerFixture(t)

		r, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
		require.NoError(t, err)

		_, err = f.sched.Move(ctx, r.ID, "bob", at(t, 13, 0), at(t, 14, 0))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestSchedulerLoad(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t)

	_, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
	require.NoError(t, err)

	// A fresh scheduler over the same store rebuilds the index and still
	// refuses the taken window.
	gate := &stubGate{known: map[string]bool{"bob": true}}
	fresh := NewScheduler(f.repo, f.catalog, gate)
	require.NoError(t, fresh.Load(ctx))

	_, err = fresh.Create(ctx, f.classroomID, "bob", at(t, 10, 30), at(t, 11, 30))
	assert.ErrorIs(t, err, ErrTimeConflict)
}
