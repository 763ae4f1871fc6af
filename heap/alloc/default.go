package alloc

import (
	"sync"

	"github.com/joshuapare/brkalloc/heap/brk"
)

// DefaultLimit is the break reservation used by the default heap.
const DefaultLimit = brk.DefaultLimit

var (
	defaultOnce sync.Once
	defaultHeap *Heap
	defaultErr  error
)

// Default returns the process-wide heap, creating it on first use over
// brk.New(DefaultLimit) with DefaultConfig. Only construction is
// synchronized; the returned heap is not thread-safe.
func Default() (*Heap, error) {
	defaultOnce.Do(func() {
		b, err := brk.New(DefaultLimit)
		if err != nil {
			defaultErr = err
			return
		}
		defaultHeap = New(b, nil)
	})
	return defaultHeap, defaultErr
}

// Malloc allocates n bytes from the default heap.
func Malloc(n uint64) (Ptr, error) {
	h, err := Default()
	if err != nil {
		return Nil, err
	}
	return h.Alloc(n)
}

// Free releases p to the default heap. Free(Nil) is a no-op.
func Free(p Ptr) error {
	if p == Nil {
		return nil
	}
	h, err := Default()
	if err != nil {
		return err
	}
	return h.Free(p)
}

// Realloc resizes p within the default heap.
func Realloc(p Ptr, n uint64) (Ptr, error) {
	h, err := Default()
	if err != nil {
		return Nil, err
	}
	return h.Realloc(p, n)
}

// Bytes returns the payload of p in the default heap.
func Bytes(p Ptr) []byte {
	h, err := Default()
	if err != nil {
		return nil
	}
	return h.Bytes(p)
}
