package alloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/internal/format"
	"github.com/joshuapare/brkalloc/internal/testutil"
)

// liveBlock records what the test wrote into a live allocation.
type liveBlock struct {
	n    int
	seed byte
}

// Test_Fuzz_RandomAllocFreeRealloc_GuardInvariants performs random
// alloc/free/realloc and validates alignment, disjointness, content and
// block conservation after every step.
func Test_Fuzz_RandomAllocFreeRealloc_GuardInvariants(t *testing.T) {
	configs := []Config{ConfigLowestFit, ConfigFirstFit}
	unbounded := ConfigLowestFit
	unbounded.Name = "LowestFitUnbounded"
	unbounded.RegistryCapacity = 0
	configs = append(configs, unbounded)

	for _, cfg := range configs {
		t.Run(cfg.Name, func(t *testing.T) {
			h := newTestHeap(t, cfg)
			rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility
			live := make(map[Ptr]liveBlock)
			ranges := testutil.NewRanges()

			track := func(p Ptr, n int, seed byte) {
				require.Zero(t, uint64(p)%format.Alignment, "misaligned pointer %#x", p)
				require.NoError(t, ranges.Add(uint64(p), h.UsableSize(p)))
				fill(h.Bytes(p)[:n], seed)
				live[p] = liveBlock{n: n, seed: seed}
			}

			for i := range 2000 {
				switch op := rng.Intn(10); {
				case op < 5 || len(live) == 0:
					n := 1 + rng.Intn(300)
					if rng.Intn(20) == 0 {
						n = 1024 + rng.Intn(64<<10)
					}
					p := mustAlloc(t, h, uint64(n))
					track(p, n, byte(i))

				case op < 8:
					for p := range live {
						require.NoError(t, h.Free(p))
						require.True(t, ranges.Remove(uint64(p)))
						delete(live, p)
						break
					}

				default:
					for p, lb := range live {
						m := 1 + rng.Intn(2*lb.n)
						q, err := h.Realloc(p, uint64(m))
						require.NoError(t, err)
						requirePattern(t, h.Bytes(q), min(lb.n, m), lb.seed)
						ranges.Remove(uint64(p))
						delete(live, p)
						track(q, min(lb.n, m), lb.seed)
						break
					}
				}

				for p, lb := range live {
					requirePattern(t, h.Bytes(p), lb.n, lb.seed)
				}
			}

			st := h.Stats()
			require.Equal(t, len(live), st.LiveBlocks)
			require.Zero(t, st.RegistryOverflows)
			require.Zero(t, st.DiscardedBlocks)
			require.Equal(t, st.BlocksCarved+st.SplitCount, st.LiveBlocks+st.FreeBlocks,
				"every block is either live or in the registry")

			blocks, freeTagged, bytes := walkCounts(h)
			require.Equal(t, st.LiveBlocks+st.FreeBlocks, blocks)
			require.Equal(t, st.FreeBlocks, freeTagged)
			require.Equal(t, carvedBytes(h), bytes)
			next, _ := h.Frontier()
			require.Equal(t, next, h.spans[len(h.spans)-1].end)

			for p := range live {
				require.NoError(t, h.Free(p))
			}
			require.Zero(t, h.Stats().LiveBlocks)
		})
	}
}

// Test_FirstFit_Conservation checks that the free list plus the live set
// accounts for every block ever carved.
func Test_FirstFit_Conservation(t *testing.T) {
	h := newTestHeap(t, ConfigFirstFit)
	rng := rand.New(rand.NewSource(1))
	var live []Ptr

	for range 500 {
		if rng.Intn(3) == 0 && len(live) > 0 {
			i := rng.Intn(len(live))
			require.NoError(t, h.Free(live[i]))
			live = append(live[:i], live[i+1:]...)
		} else {
			live = append(live, mustAlloc(t, h, uint64(1+rng.Intn(512))))
		}

		reachable := 0
		h.reg.Each(func(Block) bool {
			reachable++
			return true
		})
		st := h.Stats()
		require.Equal(t, st.BlocksCarved, reachable+len(live))
		require.Zero(t, st.SplitCount)
	}
}
