package reservation

import (
	"fmt"
	"net/http"
	"time"

	"github.com/campusbook/classroom-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "reservation not found")
	ErrInvalidInterval   = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrClassroomNotFound = apperror.New(http.StatusNotFound, "classroom not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

// Reservation is a booked half-open window [StartTime, EndTime) of a
// classroom, owned by the user who created it.
type Reservation struct {
	ID            string
	ClassroomID   string
	ClassroomName string
	OwnerID       string
	StartTime     time.Time
	EndTime       time.Time
	CreatedAt     time.Time
}

// ConflictError reports the reservation blocking an insert so the caller can
// explain the clash.
type ConflictError struct {
	ReservationID string
	StartTime     time.Time
	EndTime       time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot already booked by reservation %s", e.ReservationID)
}

// Unwrap lets errors.Is(err, ErrTimeConflict) and the HTTP error translation
// see the 409 underneath.
func (e *ConflictError) Unwrap() error {
	return ErrTimeConflict
}

// Status classifies a reservation relative to a point in time.
type Status string

const (
	StatusPast     Status = "past"
	StatusUpcoming Status = "upcoming"
)

// Classify returns StatusPast iff the reservation ended at or before now.
func (r *Reservation) Classify(now time.Time) Status {
	if !r.EndTime.After(now) {
		return StatusPast
	}
	return StatusUpcoming
}
