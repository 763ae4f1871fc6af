package stress

import (
	"fmt"
	"time"

	"github.com/joshuapare/brkalloc/heap/alloc"
)

// Scenario replays the fixed allocate/free/reuse/relocate sequence on h:
//
//	p1 = alloc(100), fill p1
//	p2 = alloc(50),  fill p2
//	free(p1)
//	p3 = alloc(90)        may reuse p1's block
//	p4 = realloc(p2, 200) relocates, keeping p2's 50 bytes
//
// Every step is followed by the alignment, overlap and content checks. The
// two remaining blocks are freed before returning.
func Scenario(h *alloc.Heap) (*Report, error) {
	start := time.Now()
	r := &Report{Policy: h.Config().Policy.String(), Iterations: 1}
	chk := checker{h: h}
	slots := make([]slot, 4)

	step := func(s Step) {
		r.Steps = append(r.Steps, s)
		r.Checks++
		r.Failures = append(r.Failures, chk.check(s.Op, slots)...)
	}
	allocate := func(i int, n uint64, seed byte) error {
		p, err := h.Alloc(n)
		if err != nil {
			return fmt.Errorf("alloc(%d): %w", n, err)
		}
		r.Allocs++
		want := make([]byte, n)
		for j := range want {
			want[j] = seed + byte(j)
		}
		copy(h.Bytes(p), want)
		slots[i] = slot{ptr: p, want: want}
		step(Step{Op: "alloc", Size: n, Ptr: uint64(p)})
		return nil
	}

	if err := allocate(0, 100, 0xA0); err != nil {
		return r, err
	}
	if err := allocate(1, 50, 0xB0); err != nil {
		return r, err
	}

	p1 := slots[0].ptr
	if err := h.Free(p1); err != nil {
		return r, fmt.Errorf("free: %w", err)
	}
	r.Frees++
	slots[0] = slot{}
	step(Step{Op: "free", Ptr: uint64(p1)})

	if err := allocate(2, 90, 0xC0); err != nil {
		return r, err
	}
	if slots[2].ptr == p1 {
		r.Steps[len(r.Steps)-1].Note = "reused freed block"
	}

	p2 := slots[1].ptr
	p4, err := h.Realloc(p2, 200)
	if err != nil {
		return r, fmt.Errorf("realloc(200): %w", err)
	}
	r.Reallocs++
	note := "in place"
	if p4 != p2 {
		r.ReallocMoved++
		note = "relocated"
	} else {
		r.ReallocInPlace++
	}
	slots[3] = slot{ptr: p4, want: slots[1].want}
	slots[1] = slot{}
	step(Step{Op: "realloc", Size: 200, Ptr: uint64(p4), Note: note})

	for i, s := range slots {
		if s.ptr == alloc.Nil {
			continue
		}
		if err := h.Free(s.ptr); err != nil {
			return r, fmt.Errorf("final free: %w", err)
		}
		r.Frees++
		slots[i] = slot{}
	}

	r.Duration = time.Since(start)
	r.Stats = h.Stats()
	return r, nil
}
