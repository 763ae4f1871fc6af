package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strictConfig(base Config) Config {
	base.Strict = true
	return base
}

func Test_Strict_DoubleFree(t *testing.T) {
	for _, cfg := range []Config{strictConfig(ConfigLowestFit), strictConfig(ConfigFirstFit)} {
		t.Run(cfg.Name, func(t *testing.T) {
			h := newTestHeap(t, cfg)
			p := mustAlloc(t, h, 40)
			mustAlloc(t, h, 8)

			require.NoError(t, h.Free(p))
			require.ErrorIs(t, h.Free(p), ErrDoubleFree)
			require.Equal(t, 1, h.Stats().FreeBlocks, "registry holds the block once")

			_, err := h.Realloc(p, 80)
			require.ErrorIs(t, err, ErrDoubleFree)
		})
	}
}

func Test_Strict_StaleAfterRelocation(t *testing.T) {
	h := newTestHeap(t, strictConfig(ConfigLowestFit))
	p := mustAlloc(t, h, 16)
	q, err := h.Realloc(p, 500)
	require.NoError(t, err)
	require.NotEqual(t, p, q)
	require.ErrorIs(t, h.Free(p), ErrDoubleFree)
	require.NoError(t, h.Free(q))
}

func Test_Strict_BadPointers(t *testing.T) {
	h := newTestHeap(t, strictConfig(ConfigLowestFit))
	p := mustAlloc(t, h, 64)

	for _, bad := range []Ptr{
		8,              // before the first payload
		p + 3,          // misaligned
		1 << 40,        // beyond the frontier
		Ptr(testLimit), // inside the break but never carved
	} {
		require.ErrorIs(t, h.Free(bad), ErrBadPointer, "ptr %#x", uint64(bad))
	}
	require.Zero(t, h.Stats().FreeBlocks)
	require.NoError(t, h.Free(p))
}

func Test_Unchecked_DoubleFreeCorruptsRegistry(t *testing.T) {
	// Without Strict the contract is the caller's: a double free records the
	// block twice and two later allocations receive the same pointer.
	h := newTestHeap(t, ConfigLowestFit)
	p := mustAlloc(t, h, 40)
	mustAlloc(t, h, 8)

	require.NoError(t, h.Free(p))
	require.NoError(t, h.Free(p))
	require.Equal(t, 2, h.Stats().FreeBlocks)

	a := mustAlloc(t, h, 40)
	b := mustAlloc(t, h, 40)
	require.Equal(t, a, b)
}
