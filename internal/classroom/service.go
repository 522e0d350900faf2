package classroom

import (
	"context"
	"strings"
	"time"

	"github.com/campusbook/classroom-booking-backend/internal/auth"
	"github.com/campusbook/classroom-booking-backend/internal/clock"
)

type CreateRequest struct {
	Name      string
	Capacity  int
	Equipment []string
}

type UpdateRequest struct {
	Name      *string
	Capacity  *int
	Equipment []string // nil means unchanged
}

// Service is the classroom catalog: the source of truth for classroom
// metadata and the equipment universe. Mutations require the
// classroom-management capability.
type Service interface {
	Create(ctx context.Context, callerID string, req CreateRequest) (*Classroom, error)
	GetByID(ctx context.Context, id string) (*Classroom, error)
	List(ctx context.Context, filter Filter) ([]*Classroom, error)
	Equipment(ctx context.Context) ([]string, error)
	Update(ctx context.Context, callerID, id string, req UpdateRequest) (*Classroom, error)
	Delete(ctx context.Context, callerID, id string) error
}

// UpcomingChecker reports whether any reservation with end > now still
// references the classroom. Implemented by the reservation repository.
type UpcomingChecker interface {
	HasUpcoming(ctx context.Context, classroomID string, now time.Time) (bool, error)
}

type service struct {
	repo         Repository
	gate         auth.Gate
	reservations UpcomingChecker
	clock        clock.Clock
}

// NewService creates a new classroom Service.
func NewService(repo Repository, gate auth.Gate, reservations UpcomingChecker, clk clock.Clock) Service {
	return &service{
		repo:         repo,
		gate:         gate,
		reservations: reservations,
		clock:        clk,
	}
}

func (s *service) Create(ctx context.Context, callerID string, req CreateRequest) (*Classroom, error) {
	if !s.gate.Authorize(ctx, callerID, auth.CapManageClassrooms) {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	equipment := normalizeEquipment(req.Equipment)
	if len(equipment) == 0 {
		return nil, ErrEquipmentRequired
	}

	c := &Classroom{
		Name:      name,
		Capacity:  req.Capacity,
		Equipment: equipment,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Classroom, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Classroom, error) {
	return s.repo.List(ctx, filter)
}

// Equipment returns the union of equipment across all classrooms,
// recomputed from the catalog on each call.
func (s *service) Equipment(ctx context.Context) ([]string, error) {
	return s.repo.ListEquipment(ctx)
}

func (s *service) Update(ctx context.Context, callerID, id string, req UpdateRequest) (*Classroom, error) {
	if !s.gate.Authorize(ctx, callerID, auth.CapManageClassrooms) {
		return nil, ErrPermissionDenied
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		c.Name = name
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		c.Capacity = *req.Capacity
	}
	if req.Equipment != nil {
		equipment := normalizeEquipment(req.Equipment)
		if len(equipment) == 0 {
			return nil, ErrEquipmentRequired
		}
		c.Equipment = equipment
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a classroom. Deletion is refused while reservations ending
// in the future still reference it, to avoid orphaning active bookings.
func (s *service) Delete(ctx context.Context, callerID, id string) error {
	if !s.gate.Authorize(ctx, callerID, auth.CapManageClassrooms) {
		return ErrPermissionDenied
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	hasUpcoming, err := s.reservations.HasUpcoming(ctx, id, s.clock.Now())
	if err != nil {
		return err
	}
	if hasUpcoming {
		return ErrUpcomingReservation
	}

	return s.repo.Delete(ctx, id)
}

// normalizeEquipment trims entries and drops empties and duplicates while
// preserving order and case.
func normalizeEquipment(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
