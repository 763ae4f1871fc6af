package alloc

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/joshuapare/brkalloc/heap/brk"
	"github.com/joshuapare/brkalloc/internal/buf"
	"github.com/joshuapare/brkalloc/internal/format"
	"github.com/joshuapare/brkalloc/internal/logger"
)

// Runtime debug flag for allocation logging - controlled by BRKALLOC_LOG_ALLOC env var.
var logAlloc = os.Getenv("BRKALLOC_LOG_ALLOC") != ""

// Heap is the allocation engine: it serves requests from its Registry and
// falls back to carving new blocks from the break frontier.
type Heap struct {
	cfg Config
	a   arena
	reg Registry
	log *slog.Logger

	// Frontier: next unused offset inside the most recently grown region and
	// how many bytes remain before another Sbrk is needed.
	next      uint64
	remaining uint64

	// spans lists carved address ranges in ascending order. A new span opens
	// only when the break hands back memory that does not continue the
	// previous one.
	spans []span

	stats Stats

	// Test hook: called after every successful Sbrk (nil in production)
	onGrow func(base uint64, n int)
}

// span is a contiguous range of carved blocks.
type span struct {
	start uint64
	end   uint64 // exclusive; equals the frontier for the last span
}

// New creates a heap over b.
//
// Parameters:
//   - b: The break to grow from. The heap assumes exclusive use of it.
//   - cfg: Allocator configuration (use nil for DefaultConfig)
func New(b brk.Break, cfg *Config) *Heap {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c := cfg.withDefaults()

	log := c.Logger
	if log == nil {
		log = logger.L
	}
	if logAlloc {
		log = logger.New(os.Stderr, slog.LevelDebug, false)
	}

	a := arena{brk: b}
	return &Heap{
		cfg: c,
		a:   a,
		reg: newRegistry(c, a),
		log: log.With("heap", c.Name),
	}
}

// Config returns the effective configuration.
func (h *Heap) Config() Config { return h.cfg }

// Alloc returns a pointer to at least n usable bytes, 8-byte aligned.
// A zero-byte request yields a minimum-size block. The only failure is
// ErrOutOfMemory.
func (h *Heap) Alloc(n uint64) (Ptr, error) {
	h.stats.AllocCalls++

	need, ok := format.BlockSize(n)
	if !ok {
		h.stats.AllocFailures++
		return Nil, fmt.Errorf("%w: request of %d bytes overflows", ErrOutOfMemory, n)
	}

	if b, found := h.reg.Take(need); found {
		h.stats.AllocFastPath++
		if h.cfg.Policy.splits() {
			b = h.split(b, need)
		}
		h.handOut(b)
		return b.Ptr(), nil
	}

	b, err := h.carve(need)
	if err != nil {
		h.stats.AllocFailures++
		return Nil, err
	}
	h.stats.AllocSlowPath++
	h.handOut(b)
	return b.Ptr(), nil
}

// Calloc allocates count*size zeroed bytes.
func (h *Heap) Calloc(count, size uint64) (Ptr, error) {
	n, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		h.stats.AllocCalls++
		h.stats.AllocFailures++
		return Nil, fmt.Errorf("%w: %d x %d bytes overflows", ErrOutOfMemory, count, size)
	}
	p, err := h.Alloc(n)
	if err != nil {
		return Nil, err
	}
	clear(h.Bytes(p))
	return p, nil
}

// Free returns the block at p to the registry. Free(Nil) is a no-op.
//
// Without Config.Strict, p must be a live pointer obtained from this heap;
// anything else is undefined behaviour. When the registry is full the block
// is dropped and ErrRegistryFull is returned; the pointer is still consumed.
func (h *Heap) Free(p Ptr) error {
	if p == Nil {
		return nil
	}
	h.stats.FreeCalls++

	b, err := h.lookup(p)
	if err != nil {
		return err
	}
	h.log.Debug("free", "ptr", uint64(p), "size", b.Size)
	return h.release(b)
}

// Realloc resizes the block at p to hold n bytes.
//
//   - Realloc(Nil, n) behaves as Alloc(n).
//   - Realloc(p, 0) frees p and returns Nil.
//   - If the block already holds n bytes, p is returned unchanged. Blocks
//     are never shrunk in place.
//   - Otherwise a new block is allocated, min(old usable, n) bytes are
//     copied and p is freed. If allocation fails p is left intact.
func (h *Heap) Realloc(p Ptr, n uint64) (Ptr, error) {
	h.stats.ReallocCalls++
	if p == Nil {
		h.log.Debug("realloc of nil pointer", "size", n)
		return h.Alloc(n)
	}
	if n == 0 {
		return Nil, h.Free(p)
	}

	old, err := h.lookup(p)
	if err != nil {
		return Nil, err
	}
	if need, ok := format.BlockSize(n); ok && old.Size >= need {
		h.stats.ReallocInPlace++
		return p, nil
	}

	q, err := h.Alloc(n)
	if err != nil {
		return Nil, err
	}
	copy(h.Bytes(q), h.a.payload(old)[:min(old.Usable(), n)])
	h.log.Debug("realloc moved", "from", uint64(p), "to", uint64(q), "size", n)

	// An overflowing registry already logged and counted the dropped block.
	_ = h.release(old)
	h.stats.ReallocMoved++
	return q, nil
}

// Bytes returns the usable payload of the live block at p. The slice
// aliases heap memory: it is valid until p is freed or relocated.
func (h *Heap) Bytes(p Ptr) []byte {
	if p == Nil {
		return nil
	}
	size, _ := h.a.header(p.block())
	return h.a.payload(Block{Off: p.block(), Size: size})
}

// UsableSize returns the payload capacity of the live block at p.
func (h *Heap) UsableSize(p Ptr) uint64 {
	if p == Nil {
		return 0
	}
	size, _ := h.a.header(p.block())
	return size - format.HeaderSize
}

// Frontier returns the next unused offset and the bytes left before the
// next Sbrk.
func (h *Heap) Frontier() (next, remaining uint64) {
	return h.next, h.remaining
}

// Stats returns a snapshot of the allocator counters.
func (h *Heap) Stats() Stats {
	s := h.stats
	rs := h.reg.Stats()
	s.FreeBlocks = h.reg.Len()
	s.DiscardedBlocks = rs.Discarded
	s.RegistryScans = rs.Scanned
	return s
}

// Walk visits every carved block in address order, live and free, until fn
// returns false. free reports the header tag, which reflects registry
// ownership only for blocks that went through Free or a split.
func (h *Heap) Walk(fn func(b Block, free bool) bool) {
	for _, sp := range h.spans {
		for off := sp.start; off < sp.end; {
			size, free := h.a.header(off)
			if size < format.MinBlockSize {
				h.log.Error("corrupt block header", "off", off, "size", size)
				return
			}
			if !fn(Block{Off: off, Size: size}, free) {
				return
			}
			off += size
		}
	}
}

// handOut marks b live and accounts for it.
func (h *Heap) handOut(b Block) {
	h.a.setHeader(b, false)
	h.stats.LiveBlocks++
	h.stats.LiveBytes += b.Size
	h.stats.BytesAllocated += b.Size
}

// release marks b free and records it in the registry.
func (h *Heap) release(b Block) error {
	h.stats.LiveBlocks--
	h.stats.LiveBytes -= b.Size
	h.stats.BytesFreed += b.Size
	return h.insert(b)
}

// insert tags b free and hands it to the registry, dropping it on overflow.
func (h *Heap) insert(b Block) error {
	h.a.setHeader(b, true)
	if err := h.reg.Insert(b); err != nil {
		h.stats.RegistryOverflows++
		h.log.Warn("free block dropped", "off", b.Off, "size", b.Size, "registry", h.reg.Len(), "err", err)
		return fmt.Errorf("free %#x: %w", uint64(b.Ptr()), err)
	}
	return nil
}

// split carves need bytes off the front of b when the remainder can hold a
// header plus one alignment unit. The tail goes back to the registry with
// size b.Size-need: like every block, its header is counted inside its size,
// so head and tail together cover b exactly.
func (h *Heap) split(b Block, need uint64) Block {
	rem := b.Size - need
	if rem < format.MinBlockSize {
		// Use entire block (absorb remainder)
		return b
	}
	h.stats.SplitCount++
	tail := Block{Off: b.Off + need, Size: rem}
	b.Size = need
	h.a.setHeader(b, false)
	_ = h.insert(tail)
	return b
}

// carve cuts a new block of need bytes at the frontier, growing the break
// first if necessary.
func (h *Heap) carve(need uint64) (Block, error) {
	if err := h.ensure(need); err != nil {
		return Block{}, err
	}
	b := Block{Off: h.next, Size: need}
	h.next += need
	h.remaining -= need
	h.spans[len(h.spans)-1].end = h.next
	h.stats.BlocksCarved++

	h.a.setHeader(b, false)
	h.a.setLink(b.Off, Nil)
	if h.cfg.ZeroFill {
		clear(h.a.payload(b))
	}
	return b, nil
}

// ensure grows the break in GrowIncrement steps until the frontier holds at
// least need bytes. Memory gained before a failing step stays in the frontier.
func (h *Heap) ensure(need uint64) error {
	inc := h.cfg.GrowIncrement
	for h.remaining < need {
		base, err := h.a.brk.Sbrk(inc)
		if err != nil {
			h.stats.GrowFailures++
			h.log.Warn("heap growth failed", "need", need, "remaining", h.remaining, "err", err)
			return fmt.Errorf("%w: need %d bytes: %w", ErrOutOfMemory, need, err)
		}
		h.stats.GrowCalls++
		h.stats.GrowBytes += uint64(inc)

		if len(h.spans) > 0 && base == h.next+h.remaining {
			h.remaining += uint64(inc)
		} else {
			// First growth, or the break moved under us: restart the
			// frontier at the new region. Any old remainder is abandoned.
			if h.remaining > 0 {
				h.log.Warn("non-contiguous break, abandoning frontier tail", "next", h.next, "remaining", h.remaining, "base", base)
			}
			start := format.Align8(base)
			h.next = start
			h.remaining = base + uint64(inc) - start
			h.spans = append(h.spans, span{start: start, end: start})
		}
		h.log.Debug("heap grown", "base", base, "bytes", inc, "remaining", h.remaining)

		if h.onGrow != nil {
			h.onGrow(base, inc)
		}
	}
	return nil
}

// lookup recovers the header of p. In Strict mode it validates that p
// addresses a live carved block.
func (h *Heap) lookup(p Ptr) (Block, error) {
	if !h.cfg.Strict {
		size, _ := h.a.header(p.block())
		return Block{Off: p.block(), Size: size}, nil
	}

	if uint64(p) < format.HeaderSize || !format.IsAligned8(uint64(p)) {
		return Block{}, fmt.Errorf("%w: %#x", ErrBadPointer, uint64(p))
	}
	off := p.block()
	sp, ok := h.findSpan(off)
	if !ok {
		return Block{}, fmt.Errorf("%w: %#x outside carved memory", ErrBadPointer, uint64(p))
	}
	size, free := h.a.header(off)
	if size < format.MinBlockSize || off+size > sp.end || !h.a.has(off, size) {
		return Block{}, fmt.Errorf("%w: %#x has invalid header size %d", ErrBadPointer, uint64(p), size)
	}
	if free {
		return Block{}, fmt.Errorf("%w: %#x", ErrDoubleFree, uint64(p))
	}
	return Block{Off: off, Size: size}, nil
}

// findSpan finds the carved span containing off.
// O(log S) operation via binary search on spans.
func (h *Heap) findSpan(off uint64) (span, bool) {
	i := sort.Search(len(h.spans), func(i int) bool { return h.spans[i].end > off })
	if i < len(h.spans) && h.spans[i].start <= off {
		return h.spans[i], true
	}
	return span{}, false
}
