package alloc

import "errors"

var (
	// ErrOutOfMemory indicates that no free block fits and the break could not grow.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrRegistryFull indicates a freed block was dropped because the bounded registry is at capacity.
	ErrRegistryFull = errors.New("alloc: free-block registry full")

	// ErrDoubleFree indicates Free of a block that is already free (Strict mode only).
	ErrDoubleFree = errors.New("alloc: double free")

	// ErrBadPointer indicates a pointer that does not address a carved block (Strict mode only).
	ErrBadPointer = errors.New("alloc: bad pointer")

	// ErrUnknownPolicy indicates an unrecognised policy name.
	ErrUnknownPolicy = errors.New("alloc: unknown policy")
)
