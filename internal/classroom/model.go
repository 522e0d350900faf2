package classroom

import (
	"net/http"
	"strings"
	"time"

	"github.com/campusbook/classroom-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "classroom not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "classroom name is required")
	ErrInvalidCapacity     = apperror.New(http.StatusBadRequest, "capacity must be a positive integer")
	ErrEquipmentRequired   = apperror.New(http.StatusBadRequest, "at least one equipment item is required")
	ErrUpcomingReservation = apperror.New(http.StatusConflict, "classroom has upcoming reservations")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
)

// Classroom represents a bookable room and its metadata.
type Classroom struct {
	ID        string
	Name      string
	Capacity  int
	Equipment []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEquipment reports whether the classroom carries the given item.
// Equipment strings are case-preserved and compared exactly.
func (c *Classroom) HasEquipment(item string) bool {
	for _, e := range c.Equipment {
		if e == item {
			return true
		}
	}
	return false
}

// Filter defines parameters for listing classrooms. All predicates are
// conjunctive; zero values mean "no constraint".
type Filter struct {
	Search      string   // case-insensitive name substring
	MinCapacity int      // capacity >= MinCapacity
	Equipment   []string // every item must be present
}

// Matches reports whether the classroom satisfies every filter predicate.
func (f Filter) Matches(c *Classroom) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.MinCapacity > 0 && c.Capacity < f.MinCapacity {
		return false
	}
	for _, item := range f.Equipment {
		if !c.HasEquipment(item) {
			return false
		}
	}
	return true
}
