package reservation

import (
	"context"
	"time"

	"github.com/campusbook/classroom-booking-backend/internal/clock"
)

// ClassifiedReservation pairs a reservation with its past/upcoming status.
type ClassifiedReservation struct {
	Reservation
	Status Status
}

// Query exposes the read-only views over reservations. It never mutates
// state.
type Query struct {
	repo  Repository
	sched *Scheduler
	clock clock.Clock
}

// NewQuery creates a Query sharing the scheduler's interval indexes.
func NewQuery(repo Repository, sched *Scheduler, clk clock.Clock) *Query {
	return &Query{
		repo:  repo,
		sched: sched,
		clock: clk,
	}
}

// MyReservations lists a user's reservations ordered by start time ascending,
// each classified Past (ended at or before now) or Upcoming.
func (q *Query) MyReservations(ctx context.Context, ownerID string) ([]ClassifiedReservation, error) {
	list, err := q.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	out := make([]ClassifiedReservation, len(list))
	for i, r := range list {
		out[i] = ClassifiedReservation{
			Reservation: *r,
			Status:      r.Classify(now),
		}
	}
	return out, nil
}

// Availability returns the booked intervals of a classroom intersecting
// [from, to), from the scheduler's index snapshot.
func (q *Query) Availability(classroomID string, from, to time.Time) []Interval {
	return q.sched.Overlapping(classroomID, from, to)
}
