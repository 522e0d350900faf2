package classroom

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository, used by tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Classroom
}

// NewMemoryRepository creates an empty in-memory classroom store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*Classroom)}
}

func (r *MemoryRepository) Create(_ context.Context, c *Classroom) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	cp := cloneClassroom(c)
	r.byID[c.ID] = cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Classroom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneClassroom(c), nil
}

func (r *MemoryRepository) List(_ context.Context, filter Filter) ([]*Classroom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Classroom
	for _, c := range r.byID {
		if filter.Matches(c) {
			out = append(out, cloneClassroom(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) ListEquipment(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var items []string
	for _, c := range r.byID {
		for _, item := range c.Equipment {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			items = append(items, item)
		}
	}
	sort.Strings(items)
	return items, nil
}

func (r *MemoryRepository) Update(_ context.Context, c *Classroom) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	r.byID[c.ID] = cloneClassroom(c)
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

func cloneClassroom(c *Classroom) *Classroom {
	cp := *c
	cp.Equipment = append([]string(nil), c.Equipment...)
	return &cp
}
