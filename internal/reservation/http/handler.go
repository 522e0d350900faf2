package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbook/classroom-booking-backend/internal/auth"
	"github.com/campusbook/classroom-booking-backend/internal/pkg/request"
	"github.com/campusbook/classroom-booking-backend/internal/pkg/response"
	"github.com/campusbook/classroom-booking-backend/internal/reservation"
)

type Handler struct {
	scheduler *reservation.Scheduler
	queries   *reservation.Query
}

func NewHandler(scheduler *reservation.Scheduler, queries *reservation.Query) *Handler {
	return &Handler{
		scheduler: scheduler,
		queries:   queries,
	}
}

// writeError translates scheduler failures, surfacing the blocking
// reservation on conflicts.
func writeError(c *gin.Context, err error) {
	var conflict *reservation.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, ConflictResponse{
			Error: err.Error(),
			Conflict: IntervalTag{
				ReservationID: conflict.ReservationID,
				StartTime:     conflict.StartTime,
				EndTime:       conflict.EndTime,
			},
		})
		return
	}
	response.Error(c, err)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r, err := h.scheduler.Create(c.Request.Context(), body.ClassroomID, userID, body.StartTime, body.EndTime)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(r))
}

func (h *Handler) Mine(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	list, err := h.queries.MyReservations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations"})
		return
	}

	items := make([]ReservationResponse, len(list))
	for i, cr := range list {
		items[i] = NewClassifiedResponse(cr)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)

	r, err := h.scheduler.Move(c.Request.Context(), uri.ID, userID, body.StartTime, body.EndTime)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	if err := h.scheduler.Delete(c.Request.Context(), uri.ID, userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
