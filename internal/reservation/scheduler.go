package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusbook/classroom-booking-backend/internal/auth"
	"github.com/campusbook/classroom-booking-backend/internal/classroom"
)

// Scheduler is the only write path for reservations. It validates input,
// enforces the no-overlap invariant through the per-classroom interval
// indexes and persists the result. Conflicts and authorization failures are
// terminal; the scheduler never retries.
type Scheduler struct {
	repo    Repository
	catalog classroom.Service
	gate    auth.Gate

	mu    sync.Mutex // guards slots
	slots map[string]*classroomSlot
}

// classroomSlot serializes writers for one classroom: overlap check, store
// write and index commit form a single critical section. Different
// classrooms proceed in parallel.
type classroomSlot struct {
	mu  sync.Mutex
	idx *intervalIndex
}

// NewScheduler creates a Scheduler. Call Load before serving traffic so the
// indexes reflect the persisted reservations.
func NewScheduler(repo Repository, catalog classroom.Service, gate auth.Gate) *Scheduler {
	return &Scheduler{
		repo:    repo,
		catalog: catalog,
		gate:    gate,
		slots:   make(map[string]*classroomSlot),
	}
}

// Load rebuilds every classroom's interval index from the store. An overlap
// among stored reservations means the invariant was broken outside this
// process and is reported as an error.
func (s *Scheduler) Load(ctx context.Context) error {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}

	for _, r := range all {
		slot := s.slot(r.ClassroomID)
		if c := slot.idx.insert(Interval{ID: r.ID, Start: r.StartTime, End: r.EndTime}); c != nil {
			return fmt.Errorf("stored reservations %s and %s overlap on classroom %s", r.ID, c.ID, r.ClassroomID)
		}
	}
	return nil
}

func (s *Scheduler) slot(classroomID string) *classroomSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[classroomID]
	if !ok {
		slot = &classroomSlot{idx: newIntervalIndex()}
		s.slots[classroomID] = slot
	}
	return slot
}

// Create books [start, end) on a classroom for ownerID. On conflict it
// returns a *ConflictError naming the blocking reservation and leaves all
// state untouched.
func (s *Scheduler) Create(ctx context.Context, classroomID, ownerID string, start, end time.Time) (*Reservation, error) {
	// Rejected before touching shared state.
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	room, err := s.catalog.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, classroom.ErrNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, err
	}

	if !s.gate.Authorize(ctx, ownerID, auth.CapCreateReservation) {
		return nil, ErrPermissionDenied
	}

	r := &Reservation{
		ID:            uuid.NewString(),
		ClassroomID:   classroomID,
		ClassroomName: room.Name,
		OwnerID:       ownerID,
		StartTime:     start,
		EndTime:       end,
	}

	slot := s.slot(classroomID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if c := slot.idx.insert(Interval{ID: r.ID, Start: start, End: end}); c != nil {
		return nil, &ConflictError{ReservationID: c.ID, StartTime: c.Start, EndTime: c.End}
	}

	if err := s.repo.Create(ctx, r); err != nil {
		slot.idx.remove(r.ID)
		return nil, fmt.Errorf("persist reservation: %w", err)
	}

	return r, nil
}

// Delete removes a reservation. Allowed for its owner or an admin.
func (s *Scheduler) Delete(ctx context.Context, reservationID, callerID string) error {
	if !s.gate.Authorize(ctx, callerID, auth.CapDeleteReservation) {
		return ErrPermissionDenied
	}

	r, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}

	if r.OwnerID != callerID && !s.gate.Authorize(ctx, callerID, auth.CapManageClassrooms) {
		return ErrPermissionDenied
	}

	slot := s.slot(r.ClassroomID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if err := s.repo.Delete(ctx, reservationID); err != nil {
		return err
	}
	slot.idx.remove(reservationID)
	return nil
}

// Move rebooks an existing reservation onto [newStart, newEnd). It is a
// remove+insert inside one critical section, so the reservation never
// conflicts with itself and the old window is restored when the new one
// cannot be taken.
func (s *Scheduler) Move(ctx context.Context, reservationID, callerID string, newStart, newEnd time.Time) (*Reservation, error) {
	if !newStart.Before(newEnd) {
		return nil, ErrInvalidInterval
	}

	r, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if r.OwnerID != callerID && !s.gate.Authorize(ctx, callerID, auth.CapManageClassrooms) {
		return nil, ErrPermissionDenied
	}

	slot := s.slot(r.ClassroomID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	old := Interval{ID: r.ID, Start: r.StartTime, End: r.EndTime}
	slot.idx.remove(r.ID)

	if c := slot.idx.insert(Interval{ID: r.ID, Start: newStart, End: newEnd}); c != nil {
		slot.idx.insert(old)
		return nil, &ConflictError{ReservationID: c.ID, StartTime: c.Start, EndTime: c.End}
	}

	if err := s.repo.UpdateTimes(ctx, r.ID, newStart, newEnd); err != nil {
		slot.idx.remove(r.ID)
		slot.idx.insert(old)
		return nil, fmt.Errorf("persist reservation move: %w", err)
	}

	r.StartTime = newStart
	r.EndTime = newEnd
	return r, nil
}

// Overlapping returns the booked intervals of a classroom intersecting
// [from, to), ordered by start. Read-only; it does not take the writer lock.
func (s *Scheduler) Overlapping(classroomID string, from, to time.Time) []Interval {
	return s.slot(classroomID).idx.overlapping(from, to)
}
