package reservation

import (
	"sort"
	"sync"
	"time"
)

// Interval is one booked half-open window [Start, End) inside a classroom's
// index.
type Interval struct {
	ID    string
	Start time.Time
	End   time.Time
}

// overlaps uses half-open semantics: touching endpoints do not overlap.
func (iv Interval) overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

// intervalIndex holds one classroom's booked intervals ordered by start.
// The set is kept pairwise non-overlapping, so a candidate can only clash
// with its immediate neighbors at the insertion point.
type intervalIndex struct {
	mu      sync.RWMutex
	ordered []Interval // sorted by Start
	byID    map[string]Interval
}

func newIntervalIndex() *intervalIndex {
	return &intervalIndex{byID: make(map[string]Interval)}
}

// locate returns the position of the first interval starting at or after t.
func (x *intervalIndex) locate(t time.Time) int {
	return sort.Search(len(x.ordered), func(i int) bool {
		return !x.ordered[i].Start.Before(t)
	})
}

// insert adds iv if it overlaps nothing and returns nil; otherwise it returns
// the blocking interval and leaves the set unchanged. Check and insert happen
// under one lock.
func (x *intervalIndex) insert(iv Interval) *Interval {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.locate(iv.Start)
	if i > 0 && x.ordered[i-1].End.After(iv.Start) {
		c := x.ordered[i-1]
		return &c
	}
	if i < len(x.ordered) && iv.End.After(x.ordered[i].Start) {
		c := x.ordered[i]
		return &c
	}

	x.ordered = append(x.ordered, Interval{})
	copy(x.ordered[i+1:], x.ordered[i:])
	x.ordered[i] = iv
	x.byID[iv.ID] = iv
	return nil
}

// remove deletes the interval with the given id, reporting whether it existed.
func (x *intervalIndex) remove(id string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	iv, ok := x.byID[id]
	if !ok {
		return false
	}

	i := x.locate(iv.Start)
	for i < len(x.ordered) && x.ordered[i].ID != id {
		i++
	}
	x.ordered = append(x.ordered[:i], x.ordered[i+1:]...)
	delete(x.byID, id)
	return true
}

// overlapping returns the intervals intersecting [from, to), ordered by start.
// Readers only take the read lock; writers are not blocked beyond the copy.
func (x *intervalIndex) overlapping(from, to time.Time) []Interval {
	x.mu.RLock()
	defer x.mu.RUnlock()

	// Non-overlapping and start-sorted implies end-sorted, so the first
	// candidate can be found by binary search on End as well.
	i := sort.Search(len(x.ordered), func(i int) bool {
		return x.ordered[i].End.After(from)
	})

	var out []Interval
	for ; i < len(x.ordered) && x.ordered[i].Start.Before(to); i++ {
		out = append(out, x.ordered[i])
	}
	return out
}
