package alloc

import "container/heap"

// blockHeap implements heap.Interface for a min-heap keyed on block size.
// Smallest blocks are at the top; ties are broken by whatever order the
// sift operations leave behind.
type blockHeap []Block

func (h blockHeap) Len() int           { return len(h) }
func (h blockHeap) Less(i, j int) bool { return h[i].Size < h[j].Size }
func (h blockHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *blockHeap) Push(x any) {
	*h = append(*h, x.(Block)) //nolint:errcheck // heap.Interface contract guarantees type
}

func (h *blockHeap) Pop() any {
	old := *h
	n := len(old)
	b := old[n-1]
	*h = old[0 : n-1]
	return b
}

// minHeap is the lowest-fit registry. Take repeatedly extracts the minimum
// until one block is large enough, so the block returned is the smallest
// free block that fits.
type minHeap struct {
	h        blockHeap
	capacity int  // 0 = unbounded
	discard  bool // drop rejected candidates instead of reinserting them

	// rejected is reused across Take calls to hold undersized candidates.
	rejected []Block
	stats    RegistryStats
}

func newMinHeap(capacity int, discard bool) *minHeap {
	m := &minHeap{capacity: capacity, discard: discard}
	if capacity > 0 {
		m.h = make(blockHeap, 0, capacity)
	}
	return m
}

// Insert appends b and sifts it up. A bounded heap at capacity rejects b.
func (m *minHeap) Insert(b Block) error {
	if m.capacity > 0 && len(m.h) >= m.capacity {
		m.stats.Overflows++
		return ErrRegistryFull
	}
	heap.Push(&m.h, b)
	m.stats.Inserts++
	return nil
}

// extractMin removes the smallest block: the root is replaced by the last
// element, which then sifts down towards the smaller child.
func (m *minHeap) extractMin() (Block, bool) {
	if len(m.h) == 0 {
		return Block{}, false
	}
	return heap.Pop(&m.h).(Block), true //nolint:errcheck // blockHeap only holds Block
}

// Take extracts minima until one satisfies need. Undersized candidates are
// put back afterwards unless the heap was built with discard set, in which
// case they are dropped and counted.
func (m *minHeap) Take(need uint64) (Block, bool) {
	m.rejected = m.rejected[:0]
	var (
		found Block
		ok    bool
	)
	for {
		b, more := m.extractMin()
		if !more {
			break
		}
		m.stats.Scanned++
		if b.Size >= need {
			found, ok = b, true
			break
		}
		m.rejected = append(m.rejected, b)
	}

	if m.discard {
		m.stats.Discarded += len(m.rejected)
	} else {
		// Every rejected block was extracted above, so there is room for all of them.
		for _, b := range m.rejected {
			heap.Push(&m.h, b)
		}
	}
	m.rejected = m.rejected[:0]

	if !ok {
		m.stats.Misses++
		return Block{}, false
	}
	m.stats.Takes++
	return found, true
}

// Len implements Registry.
func (m *minHeap) Len() int { return len(m.h) }

// Each visits blocks in heap-array order.
func (m *minHeap) Each(fn func(Block) bool) {
	for _, b := range m.h {
		if !fn(b) {
			return
		}
	}
}

// Min returns the smallest recorded block without removing it.
func (m *minHeap) Min() (Block, bool) {
	if len(m.h) == 0 {
		return Block{}, false
	}
	return m.h[0], true
}

// Stats implements Registry.
func (m *minHeap) Stats() RegistryStats { return m.stats }

// Compile-time interface check
var _ Registry = (*minHeap)(nil)
