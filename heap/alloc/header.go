package alloc

import (
	"github.com/joshuapare/brkalloc/heap/brk"
	"github.com/joshuapare/brkalloc/internal/buf"
	"github.com/joshuapare/brkalloc/internal/format"
)

// Block identifies a block by the offset of its header and its total size
// (header included).
type Block struct {
	Off  uint64
	Size uint64
}

// Ptr returns the payload address of b.
func (b Block) Ptr() Ptr { return Ptr(b.Off + format.HeaderSize) }

// Usable returns the payload capacity of b.
func (b Block) Usable() uint64 { return b.Size - format.HeaderSize }

// End returns the offset one past the last byte of b.
func (b Block) End() uint64 { return b.Off + b.Size }

// arena reads and writes block headers stored inside the break region.
// The region is re-read on every access; a Break may hand out a new slice
// header after growth even when the memory itself does not move.
type arena struct {
	brk brk.Break
}

func (a arena) mem() []byte { return a.brk.Bytes() }

// header decodes the size word at off.
func (a arena) header(off uint64) (size uint64, free bool) {
	w := format.ReadU64(a.mem(), off+format.HeaderSizeOffset)
	return w & format.SizeMask, w&format.FreeTag != 0
}

// setHeader encodes b's size and free tag at b.Off.
func (a arena) setHeader(b Block, free bool) {
	w := b.Size
	if free {
		w |= format.FreeTag
	}
	format.PutU64(a.mem(), b.Off+format.HeaderSizeOffset, w)
}

// link returns the payload pointer of the next free block, or Nil.
func (a arena) link(off uint64) Ptr {
	return Ptr(format.ReadU64(a.mem(), off+format.HeaderLinkOffset))
}

// setLink stores next as the free-list successor of the block at off.
func (a arena) setLink(off uint64, next Ptr) {
	format.PutU64(a.mem(), off+format.HeaderLinkOffset, uint64(next))
}

// payload returns the usable bytes of b with capacity clipped to the block.
func (a arena) payload(b Block) []byte {
	m := a.mem()
	return m[b.Off+format.HeaderSize : b.End() : b.End()]
}

// has reports whether [off, off+n) lies inside the grown region.
func (a arena) has(off, n uint64) bool {
	return buf.Has(a.mem(), off, n)
}
