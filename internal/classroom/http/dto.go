package http

import (
	"time"

	"github.com/campusbook/classroom-booking-backend/internal/classroom"
)

type ClassroomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Equipment []string  `json:"equipment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewClassroomResponse(c *classroom.Classroom) ClassroomResponse {
	return ClassroomResponse{
		ID:        c.ID,
		Name:      c.Name,
		Capacity:  c.Capacity,
		Equipment: c.Equipment,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CreateClassroomBody struct {
	Name      string   `json:"name" binding:"required"`
	Capacity  int      `json:"capacity" binding:"required,gt=0"`
	Equipment []string `json:"equipment" binding:"required,min=1"`
}

type UpdateClassroomBody struct {
	Name      *string  `json:"name"`
	Capacity  *int     `json:"capacity" binding:"omitempty,gt=0"`
	Equipment []string `json:"equipment" binding:"omitempty,min=1"`
}

// ListClassroomsQuery defines the optional, conjunctive filter parameters.
type ListClassroomsQuery struct {
	Search      string   `form:"search"`
	MinCapacity int      `form:"min_capacity" binding:"omitempty,gt=0"`
	Equipment   []string `form:"equipment"`
}

// AvailabilityQuery bounds the booked-interval listing.
type AvailabilityQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type BookedIntervalResponse struct {
	ReservationID string    `json:"reservationId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}
