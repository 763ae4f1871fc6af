package alloc

// Registry tracks free blocks and answers "a free block of size >= need".
//
// Implementations:
//   - freeList: LIFO singly-linked list threaded through block headers (first-fit)
//   - minHeap: size-ordered binary min-heap (lowest-fit)
type Registry interface {
	// Insert adds a free block. Returns ErrRegistryFull when a bounded
	// registry is at capacity; the block is not recorded in that case.
	Insert(b Block) error

	// Take removes and returns a block whose size is at least need.
	Take(need uint64) (Block, bool)

	// Len returns the number of blocks currently recorded.
	Len() int

	// Each visits every recorded block until fn returns false. Order is
	// implementation defined.
	Each(fn func(Block) bool)

	// Stats returns registry counters.
	Stats() RegistryStats
}

// RegistryStats holds registry-level counters.
type RegistryStats struct {
	Inserts   int // Successful Insert calls
	Overflows int // Insert calls rejected with ErrRegistryFull
	Takes     int // Successful Take calls
	Misses    int // Take calls that found nothing
	Scanned   int // Blocks examined by Take
	Discarded int // Undersized blocks dropped by Take
}

// newRegistry builds the registry for cfg.Policy.
func newRegistry(cfg Config, a arena) Registry {
	switch cfg.Policy {
	case PolicyFirstFit:
		return newFreeList(a)
	default:
		return newMinHeap(cfg.RegistryCapacity, cfg.DiscardRejected)
	}
}
