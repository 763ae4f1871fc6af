// Package format holds the on-arena layout constants shared by the break and
// allocator packages. A block is a fixed header followed by its payload, and
// every block starts and ends on an Alignment boundary.
package format

const (
	// Alignment is the boundary every block offset and block size is rounded to.
	Alignment = 8

	// AlignmentMask is the bitmask used for aligning to 8-byte boundaries (Alignment - 1).
	AlignmentMask = Alignment - 1

	// WordSize is the width of one header field.
	WordSize = 8

	// HeaderSize is the number of bytes reserved in front of every payload.
	// Layout (little-endian):
	//   0x00  size word (total block size including header; bit 0 = free tag)
	//   0x08  link word (offset of the next free block, 0 = end of list)
	HeaderSize = 2 * WordSize

	// HeaderSizeOffset is the offset of the size word inside the header.
	HeaderSizeOffset = 0x00

	// HeaderLinkOffset is the offset of the free-list link inside the header.
	HeaderLinkOffset = 0x08

	// MinBlockSize is the smallest block the allocator ever carves: a header
	// plus one alignment unit of payload. Zero-byte requests round up to it.
	MinBlockSize = HeaderSize + Alignment

	// FreeTag marks a block as owned by the free-block registry. Block sizes
	// are multiples of Alignment so bit 0 of the size word is always spare.
	FreeTag = 1

	// SizeMask strips the tag bits from a raw size word.
	SizeMask = ^uint64(AlignmentMask)

	// GrowIncrement is the number of bytes requested from the break per growth call.
	GrowIncrement = 1 << 20

	// PageSize is the granularity the mmap break commits memory in.
	PageSize = 0x1000

	// PageMask is the bitmask used for aligning to page boundaries (PageSize - 1).
	PageMask = PageSize - 1
)
