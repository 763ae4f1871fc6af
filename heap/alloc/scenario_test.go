package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/heap/brk"
	"github.com/joshuapare/brkalloc/internal/testutil"
)

// Test_EndToEndScenario walks the canonical allocate/free/reuse/relocate
// sequence and checks that live ranges never overlap.
func Test_EndToEndScenario(t *testing.T) {
	for _, cfg := range []Config{ConfigLowestFit, ConfigFirstFit} {
		t.Run(cfg.Name, func(t *testing.T) {
			h := newTestHeap(t, cfg)
			ranges := testutil.NewRanges()
			add := func(p Ptr) {
				t.Helper()
				require.NoError(t, ranges.Add(uint64(p), h.UsableSize(p)))
			}

			p1 := mustAlloc(t, h, 100)
			add(p1)
			fill(h.Bytes(p1)[:100], 0xA0)

			p2 := mustAlloc(t, h, 50)
			add(p2)
			fill(h.Bytes(p2)[:50], 0xB0)

			require.NoError(t, h.Free(p1))
			ranges.Remove(uint64(p1))

			p3 := mustAlloc(t, h, 90)
			add(p3)
			require.Equal(t, p1, p3, "freed 100-byte block is reused")

			p4, err := h.Realloc(p2, 200)
			require.NoError(t, err)
			require.NotEqual(t, p2, p4, "50-byte block cannot hold 200 bytes")
			ranges.Remove(uint64(p2))
			add(p4)
			requirePattern(t, h.Bytes(p4), 50, 0xB0)

			require.True(t, ranges.Disjoint())
			require.Equal(t, 2, h.Stats().LiveBlocks)
		})
	}
}

// Test_ExhaustionScenario grows until the break refuses, then checks that
// earlier allocations survive the failing call.
func Test_ExhaustionScenario(t *testing.T) {
	const mb = 1 << 20

	t.Run("limit", func(t *testing.T) {
		h := New(brk.NewSlice(4*mb), nil)
		var ptrs []Ptr
		for i := 0; ; i++ {
			p, err := h.Alloc(mb)
			if err != nil {
				require.ErrorIs(t, err, ErrOutOfMemory)
				require.ErrorIs(t, err, brk.ErrExhausted)
				break
			}
			fill(h.Bytes(p), byte(i))
			ptrs = append(ptrs, p)
			require.Less(t, i, 8, "break limit not enforced")
		}
		require.Len(t, ptrs, 3)
		for i, p := range ptrs {
			requirePattern(t, h.Bytes(p), mb, byte(i))
		}
		st := h.Stats()
		require.Equal(t, 1, st.GrowFailures)
		require.Equal(t, 1, st.AllocFailures)
	})

	t.Run("injected", func(t *testing.T) {
		fb := testutil.NewFaultyBreak(brk.NewSlice(64*mb), 5)
		h := New(fb, nil)
		var ptrs []Ptr
		for i := range 10 {
			p, err := h.Alloc(mb)
			if err != nil {
				require.ErrorIs(t, err, ErrOutOfMemory)
				break
			}
			fill(h.Bytes(p), byte(i))
			ptrs = append(ptrs, p)
		}
		require.Len(t, ptrs, 4)
		require.Equal(t, 1, fb.Failures)
		for i, p := range ptrs {
			requirePattern(t, h.Bytes(p), mb, byte(i))
		}

		// Small requests still fit in the frontier left behind.
		_, remaining := h.Frontier()
		require.Positive(t, remaining)
		p, err := h.Alloc(remaining / 2)
		require.NoError(t, err)
		require.NotEqual(t, Nil, p)
	})
}

// Test_NonContiguousBreak verifies that the heap restarts its frontier when
// the break returns memory that does not continue the previous region.
func Test_NonContiguousBreak(t *testing.T) {
	gb := &testutil.GappyBreak{Break: brk.NewSlice(1 << 20), Gap: 8}
	cfg := ConfigLowestFit
	cfg.GrowIncrement = 4096
	h := New(gb, &cfg)

	p1 := mustAlloc(t, h, 4000)
	require.Equal(t, Ptr(8+16), p1)

	p2 := mustAlloc(t, h, 100) // 120 > 80 left: new region at 4112
	require.Equal(t, Ptr(4112+16), p2)
	require.Len(t, h.spans, 2)

	blocks, _, bytes := walkCounts(h)
	require.Equal(t, 2, blocks)
	require.Equal(t, uint64(4016+120), bytes)
}
