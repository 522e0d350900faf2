package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/classroom-booking-backend/internal/clock"
)

func TestQueryMyReservations(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t)

	past, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 8, 0), at(t, 9, 0))
	require.NoError(t, err)
	ending, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 11, 0), at(t, 12, 0))
	require.NoError(t, err)
	upcoming, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 14, 0), at(t, 15, 0))
	require.NoError(t, err)
	_, err = f.sched.Create(ctx, f.classroomID, "bob", at(t, 16, 0), at(t, 17, 0))
	require.NoError(t, err)

	q := NewQuery(f.repo, f.sched, clock.NewFixed(at(t, 12, 0)))

	list, err := q.MyReservations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Ordered by start time, only alice's.
	assert.Equal(t, past.ID, list[0].ID)
	assert.Equal(t, ending.ID, list[1].ID)
	assert.Equal(t, upcoming.ID, list[2].ID)

	assert.Equal(t, StatusPast, list[0].Status)
	// A reservation ending exactly now is past: [11:00,12:00) at 12:00.
	assert.Equal(t, StatusPast, list[1].Status)
	assert.Equal(t, StatusUpcoming, list[2].Status)
}

func TestQueryMyReservationsEmpty(t *testing.T) {
	f := newSchedulerFixture(t)
	q := NewQuery(f.repo, f.sched, clock.NewFixed(at(t, 12, 0)))

	list, err := q.MyReservations(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestQueryAvailability(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t)

	a, err := f.sched.Create(ctx, f.classroomID, "alice", at(t, 10, 0), at(t, 11, 0))
	require.NoError(t, err)
	b, err := f.sched.Create(ctx, f.classroomID, "bob", at(t, 13, 0), at(t, 14, 0))
	require.NoError(t, err)

	q := NewQuery(f.repo, f.sched, clock.NewFixed(at(t, 9, 0)))

	got := q.Availability(f.classroomID, at(t, 10, 30), at(t, 13, 30))
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)

	// Half-open window just between the two bookings.
	assert.Empty(t, q.Availability(f.classroomID, at(t, 11, 0), at(t, 13, 0)))
}

func TestReservationClassify(t *testing.T) {
	r := &Reservation{StartTime: at(t, 10, 0), EndTime: at(t, 11, 0)}

	assert.Equal(t, StatusUpcoming, r.Classify(at(t, 9, 0)))
	assert.Equal(t, StatusUpcoming, r.Classify(at(t, 10, 30)))
	assert.Equal(t, StatusPast, r.Classify(at(t, 11, 0)))
	assert.Equal(t, StatusPast, r.Classify(at(t, 12, 0)))
}
