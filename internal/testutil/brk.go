// Package testutil provides test doubles and checkers shared by the heap packages.
package testutil

import (
	"fmt"

	"github.com/joshuapare/brkalloc/heap/brk"
)

// FaultyBreak wraps a Break and fails deterministically once a call budget
// is spent. It counts every Sbrk call that reaches it.
type FaultyBreak struct {
	brk.Break

	// FailAfter is the number of Sbrk calls with n > 0 that succeed before
	// every later one fails. Negative means never fail.
	FailAfter int

	// Calls counts Sbrk calls with n > 0, including failed ones.
	Calls int

	// Failures counts calls rejected by the double.
	Failures int
}

// NewFaultyBreak wraps b so that the first failAfter growth calls succeed.
func NewFaultyBreak(b brk.Break, failAfter int) *FaultyBreak {
	return &FaultyBreak{Break: b, FailAfter: failAfter}
}

// Sbrk implements brk.Break.
func (f *FaultyBreak) Sbrk(n int) (uint64, error) {
	if n == 0 {
		return f.Break.Sbrk(0)
	}
	f.Calls++
	if f.FailAfter >= 0 && f.Calls > f.FailAfter {
		f.Failures++
		return 0, fmt.Errorf("%w: injected failure on call %d", brk.ErrExhausted, f.Calls)
	}
	return f.Break.Sbrk(n)
}

// GappyBreak wraps a Break and advances the underlying break by Gap bytes
// before every growth call, so consecutive regions are never contiguous.
type GappyBreak struct {
	brk.Break
	Gap int
}

// Sbrk implements brk.Break.
func (g *GappyBreak) Sbrk(n int) (uint64, error) {
	if n > 0 && g.Gap > 0 {
		if _, err := g.Break.Sbrk(g.Gap); err != nil {
			return 0, err
		}
	}
	return g.Break.Sbrk(n)
}
