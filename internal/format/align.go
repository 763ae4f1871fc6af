package format

// Alignment utilities for block sizes and break extents.

// Align8 returns n aligned up to the next 8-byte boundary.
// Used for block sizes and offsets, which must be 8-byte aligned.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n uint64) uint64 {
	return (n + AlignmentMask) &^ AlignmentMask
}

// AlignPage returns n aligned up to the next 4KB (4096-byte) boundary.
// Used by the mmap break, which can only change protection on whole pages.
//
// Example:
//
//	AlignPage(1)    = 4096
//	AlignPage(4096) = 4096
//	AlignPage(4097) = 8192
func AlignPage(n uint64) uint64 {
	return (n + PageMask) &^ PageMask
}

// IsAligned8 reports whether n sits on an 8-byte boundary.
func IsAligned8(n uint64) bool {
	return n&AlignmentMask == 0
}

// BlockSize returns the total block size needed to hold a payload of n bytes:
// header plus payload, rounded up to the alignment unit. The second result is
// false when the computation would overflow.
//
// Example:
//
//	BlockSize(0)   = 24 (MinBlockSize)
//	BlockSize(1)   = 24
//	BlockSize(100) = 120
func BlockSize(n uint64) (uint64, bool) {
	if n > ^uint64(0)-HeaderSize-AlignmentMask {
		return 0, false
	}
	sz := Align8(n + HeaderSize)
	if sz < MinBlockSize {
		sz = MinBlockSize
	}
	return sz, true
}
