package alloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/heap/brk"
)

const testLimit = 64 << 20

// newTestHeap builds a heap over a slice break with the given config.
func newTestHeap(t testing.TB, cfg Config) *Heap {
	t.Helper()
	return New(brk.NewSlice(testLimit), &cfg)
}

// mustAlloc allocates n bytes and fails the test on error.
func mustAlloc(t testing.TB, h *Heap, n uint64) Ptr {
	t.Helper()
	p, err := h.Alloc(n)
	require.NoError(t, err)
	require.NotEqual(t, Nil, p)
	return p
}

// fill writes a recognisable pattern derived from seed into b.
func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}

// requirePattern checks the first n bytes of b against fill(seed).
func requirePattern(t testing.TB, b []byte, n int, seed byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(b), n)
	want := make([]byte, n)
	fill(want, seed)
	if !bytes.Equal(want, b[:n]) {
		i := 0
		for want[i] == b[i] {
			i++
		}
		t.Fatalf("payload corrupted at offset %d: got %#x want %#x", i, b[i], want[i])
	}
}

// blockSize returns the recorded size of the block behind p.
func blockSize(h *Heap, p Ptr) uint64 {
	size, _ := h.a.header(p.block())
	return size
}

// walkCounts returns (blocks, free-tagged blocks, bytes) over all spans.
func walkCounts(h *Heap) (int, int, uint64) {
	var n, free int
	var bytes uint64
	h.Walk(func(b Block, isFree bool) bool {
		n++
		bytes += b.Size
		if isFree {
			free++
		}
		return true
	})
	return n, free, bytes
}

// carvedBytes sums the extent of every span.
func carvedBytes(h *Heap) uint64 {
	var total uint64
	for _, sp := range h.spans {
		total += sp.end - sp.start
	}
	return total
}
