//go:build linux || darwin

package brk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/internal/format"
)

func TestMmap_CommitsPagesOnDemand(t *testing.T) {
	m, err := NewMmap(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	require.Equal(t, uint64(1<<20), m.Limit())
	require.Zero(t, m.Committed())

	base, err := m.Sbrk(10)
	require.NoError(t, err)
	require.Zero(t, base)
	require.Equal(t, uint64(format.PageSize), m.Committed())

	// Whole committed page is writable, fresh memory reads as zero.
	mem := m.Bytes()
	require.Len(t, mem, 10)
	for i := range mem {
		require.Zero(t, mem[i])
		mem[i] = byte(i)
	}

	base, err = m.Sbrk(format.PageSize)
	require.NoError(t, err)
	require.Equal(t, uint64(10), base)
	require.Equal(t, uint64(2*format.PageSize), m.Committed())
	require.Equal(t, byte(9), m.Bytes()[9])
}

func TestMmap_Exhaustion(t *testing.T) {
	m, err := NewMmap(3 * format.PageSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	_, err = m.Sbrk(2 * format.PageSize)
	require.NoError(t, err)

	_, err = m.Sbrk(2 * format.PageSize)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, uint64(2*format.PageSize), m.Top())

	_, err = m.Sbrk(format.PageSize)
	require.NoError(t, err)
	require.Equal(t, m.Limit(), m.Top())
}

func TestMmap_BaseIsPageAligned(t *testing.T) {
	b, err := New(1 << 16)
	require.NoError(t, err)
	m := b.(*Mmap)
	t.Cleanup(func() { _ = m.Close() })

	_, err = m.Sbrk(8)
	require.NoError(t, err)
	addr := uintptrOf(m.Bytes())
	require.Zero(t, addr%format.PageSize)
}

func TestMmap_CloseTwice(t *testing.T) {
	m, err := NewMmap(format.PageSize)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	_, err = m.Sbrk(1)
	require.ErrorIs(t, err, ErrClosed)
}
