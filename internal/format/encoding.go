package format

import "encoding/binary"

// Binary encoding utilities for the header words stored in the arena.
//
// Headers live inside the arena bytes rather than in Go structs so that a
// payload offset is enough to recover its header in O(1).

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off uint64, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off uint64) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
