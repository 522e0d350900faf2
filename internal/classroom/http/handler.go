package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbook/classroom-booking-backend/internal/auth"
	"github.com/campusbook/classroom-booking-backend/internal/classroom"
	"github.com/campusbook/classroom-booking-backend/internal/pkg/request"
	"github.com/campusbook/classroom-booking-backend/internal/pkg/response"
	"github.com/campusbook/classroom-booking-backend/internal/reservation"
)

type Handler struct {
	service classroom.Service
	queries *reservation.Query
}

func NewHandler(service classroom.Service, queries *reservation.Query) *Handler {
	return &Handler{
		service: service,
		queries: queries,
	}
}

func (h *Handler) List(c *gin.Context) {
	var q ListClassroomsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	filter := classroom.Filter{
		Search:      q.Search,
		MinCapacity: q.MinCapacity,
		Equipment:   q.Equipment,
	}

	classrooms, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list classrooms"})
		return
	}

	items := make([]ClassroomResponse, len(classrooms))
	for i, room := range classrooms {
		items[i] = NewClassroomResponse(room)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	room, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClassroomResponse(room))
}

// Equipment returns the union of equipment across all classrooms.
func (h *Handler) Equipment(c *gin.Context) {
	items, err := h.service.Equipment(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list equipment"})
		return
	}
	if items == nil {
		items = []string{}
	}

	c.JSON(http.StatusOK, items)
}

// Availability lists the booked intervals of a classroom intersecting
// [from, to).
func (h *Handler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	booked := h.queries.Availability(uri.ID, q.From, q.To)
	items := make([]BookedIntervalResponse, len(booked))
	for i, iv := range booked {
		items[i] = BookedIntervalResponse{
			ReservationID: iv.ID,
			StartTime:     iv.Start,
			EndTime:       iv.End,
		}
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateClassroomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	room, err := h.service.Create(c.Request.Context(), userID, classroom.CreateRequest{
		Name:      body.Name,
		Capacity:  body.Capacity,
		Equipment: body.Equipment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewClassroomResponse(room))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateClassroomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)

	room, err := h.service.Update(c.Request.Context(), userID, uri.ID, classroom.UpdateRequest{
		Name:      body.Name,
		Capacity:  body.Capacity,
		Equipment: body.Equipment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClassroomResponse(room))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	if err := h.service.Delete(c.Request.Context(), userID, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
