package alloc

import (
	"fmt"
	"strings"

	"github.com/joshuapare/brkalloc/internal/format"
)

// Ptr is the address of a payload: an offset into the break region.
type Ptr uint64

// Nil is the "no value" pointer. No payload ever starts at offset 0 because
// a header always precedes it.
const Nil Ptr = 0

// block returns the offset of the header that precedes p.
func (p Ptr) block() uint64 { return uint64(p) - format.HeaderSize }

// Policy selects the free-block registry and the split/zero behaviour of the engine.
type Policy uint8

const (
	// PolicyLowestFit keeps free blocks in a size-ordered min-heap and splits oversized fits.
	PolicyLowestFit Policy = iota

	// PolicyFirstFit keeps free blocks in a LIFO list and hands out the first fit whole.
	PolicyFirstFit
)

func (p Policy) String() string {
	switch p {
	case PolicyLowestFit:
		return "lowest-fit"
	case PolicyFirstFit:
		return "first-fit"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy maps a policy name ("lowest-fit", "first-fit") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowest-fit", "lowestfit", "minheap", "min-heap":
		return PolicyLowestFit, nil
	case "first-fit", "firstfit", "list":
		return PolicyFirstFit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// splits reports whether oversized registry hits are divided.
func (p Policy) splits() bool { return p == PolicyLowestFit }

// zeroes reports whether freshly carved payloads are cleared.
func (p Policy) zeroes() bool { return p == PolicyFirstFit }

// Stats holds allocator counters.
type Stats struct {
	GrowCalls         int    // Successful Sbrk calls
	GrowFailures      int    // Failed Sbrk calls
	GrowBytes         uint64 // Total bytes obtained from the break
	AllocCalls        int    // Total Alloc() calls (including those made by Realloc and Calloc)
	AllocFastPath     int    // Allocations served from the registry
	AllocSlowPath     int    // Allocations carved from the frontier
	AllocFailures     int    // Allocations that returned ErrOutOfMemory
	FreeCalls         int    // Free() calls with a non-nil pointer
	ReallocCalls      int    // Total Realloc() calls
	ReallocInPlace    int    // Reallocs that returned the same pointer
	ReallocMoved      int    // Reallocs that relocated the block
	SplitCount        int    // Registry hits that were split
	BlocksCarved      int    // Blocks carved from the frontier
	RegistryOverflows int    // Blocks dropped because the registry was full
	DiscardedBlocks   int    // Undersized blocks dropped during a lowest-fit search
	BytesAllocated    uint64 // Total block bytes handed out (including headers)
	BytesFreed        uint64 // Total block bytes returned via Free
	LiveBlocks        int    // Blocks currently owned by callers
	LiveBytes         uint64 // Block bytes currently owned by callers
	FreeBlocks        int    // Blocks currently held by the registry
	RegistryScans     int    // Blocks examined while searching the registry
}
