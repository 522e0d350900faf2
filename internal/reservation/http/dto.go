package http

import (
	"time"

	"github.com/campusbook/classroom-booking-backend/internal/reservation"
)

// ClassroomTag is the embedded classroom reference in reservation responses.
type ClassroomTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReservationResponse struct {
	ID        string       `json:"id"`
	Classroom ClassroomTag `json:"classroom"`
	StartTime time.Time    `json:"startTime"`
	EndTime   time.Time    `json:"endTime"`
	CreatedAt time.Time    `json:"createdAt"`
	Status    string       `json:"status,omitempty"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        r.ID,
		Classroom: ClassroomTag{ID: r.ClassroomID, Name: r.ClassroomName},
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		CreatedAt: r.CreatedAt,
	}
}

func NewClassifiedResponse(cr reservation.ClassifiedReservation) ReservationResponse {
	resp := NewReservationResponse(&cr.Reservation)
	resp.Status = string(cr.Status)
	return resp
}

type CreateReservationBody struct {
	ClassroomID string    `json:"classroomId" binding:"required,uuid"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

type UpdateReservationBody struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// ConflictResponse carries the blocking reservation so clients can explain
// the clash.
type ConflictResponse struct {
	Error    string      `json:"error"`
	Conflict IntervalTag `json:"conflict"`
}

type IntervalTag struct {
	ReservationID string    `json:"reservationId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}
