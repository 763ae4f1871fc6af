package stress

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/joshuapare/brkalloc/heap/alloc"
	"github.com/joshuapare/brkalloc/internal/format"
)

// slot is one tracked allocation: its pointer and the bytes written to it.
type slot struct {
	ptr  alloc.Ptr
	want []byte
}

// checker verifies the externally observable guarantees over a set of slots.
type checker struct {
	h *alloc.Heap
}

// check returns one message per violated guarantee, prefixed by step.
func (c checker) check(step string, slots []slot) []string {
	var failures []string

	type extent struct {
		idx        int
		start, end uint64
	}
	live := make([]extent, 0, len(slots))

	for i, s := range slots {
		if s.ptr == alloc.Nil {
			continue
		}
		if !format.IsAligned8(uint64(s.ptr)) {
			failures = append(failures, fmt.Sprintf("%s: slot %d pointer %#x not 8-byte aligned", step, i, uint64(s.ptr)))
			continue
		}
		n := c.h.UsableSize(s.ptr)
		if uint64(len(s.want)) > n {
			failures = append(failures, fmt.Sprintf("%s: slot %d holds %d bytes, capacity %d", step, i, len(s.want), n))
			continue
		}
		if got := c.h.Bytes(s.ptr)[:len(s.want)]; !bytes.Equal(got, s.want) {
			failures = append(failures, fmt.Sprintf("%s: slot %d content changed: got %q want %q", step, i, got, s.want))
		}
		live = append(live, extent{idx: i, start: uint64(s.ptr), end: uint64(s.ptr) + n})
	}

	sort.Slice(live, func(i, j int) bool { return live[i].start < live[j].start })
	for i := 1; i < len(live); i++ {
		prev, cur := live[i-1], live[i]
		if cur.start < prev.end {
			failures = append(failures, fmt.Sprintf("%s: slot %d [%#x,%#x) overlaps slot %d [%#x,%#x)",
				step, cur.idx, cur.start, cur.end, prev.idx, prev.start, prev.end))
		}
	}
	return failures
}
