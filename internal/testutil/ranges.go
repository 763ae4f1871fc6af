package testutil

import (
	"fmt"
	"sort"
)

// Range is a half-open address interval [Start, End).
type Range struct {
	Start uint64
	End   uint64
}

// Ranges tracks live address ranges and rejects overlapping insertions.
type Ranges struct {
	byStart map[uint64]Range
}

// NewRanges returns an empty tracker.
func NewRanges() *Ranges {
	return &Ranges{byStart: make(map[uint64]Range)}
}

// Add records [start, start+n). It returns an error naming the first live
// range it would overlap; nothing is recorded in that case.
func (r *Ranges) Add(start, n uint64) error {
	nr := Range{Start: start, End: start + n}
	for _, cur := range r.byStart {
		if nr.Start < cur.End && cur.Start < nr.End {
			return fmt.Errorf("range [%#x,%#x) overlaps live range [%#x,%#x)", nr.Start, nr.End, cur.Start, cur.End)
		}
	}
	if _, dup := r.byStart[start]; dup {
		return fmt.Errorf("range starting at %#x already live", start)
	}
	r.byStart[start] = nr
	return nil
}

// Remove forgets the range starting at start. It reports whether one existed.
func (r *Ranges) Remove(start uint64) bool {
	if _, ok := r.byStart[start]; !ok {
		return false
	}
	delete(r.byStart, start)
	return true
}

// Len returns the number of live ranges.
func (r *Ranges) Len() int { return len(r.byStart) }

// Sorted returns the live ranges ordered by start.
func (r *Ranges) Sorted() []Range {
	out := make([]Range, 0, len(r.byStart))
	for _, v := range r.byStart {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Disjoint reports whether every pair of live ranges is disjoint.
func (r *Ranges) Disjoint() bool {
	s := r.Sorted()
	for i := 1; i < len(s); i++ {
		if s[i].Start < s[i-1].End {
			return false
		}
	}
	return true
}
