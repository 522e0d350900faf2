package reservation

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository, used by tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Reservation
}

// NewMemoryRepository creates an empty in-memory reservation store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*Reservation)}
}

func (r *MemoryRepository) Create(_ context.Context, res *Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res.CreatedAt = time.Now().UTC()
	cp := *res
	r.byID[res.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Reservation
	for _, res := range r.byID {
		if res.OwnerID == ownerID {
			cp := *res
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Reservation
	for _, res := range r.byID {
		cp := *res
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClassroomID != out[j].ClassroomID {
			return out[i].ClassroomID < out[j].ClassroomID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (r *MemoryRepository) UpdateTimes(_ context.Context, id string, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	res.StartTime = start
	res.EndTime = end
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) HasUpcoming(_ context.Context, classroomID string, now time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.byID {
		if res.ClassroomID == classroomID && res.EndTime.After(now) {
			return true, nil
		}
	}
	return false, nil
}

// Len reports the number of stored reservations. Test helper.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
