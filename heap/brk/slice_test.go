package brk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlice_SbrkReturnsPreviousTop(t *testing.T) {
	s := NewSlice(4096)

	top, err := s.Sbrk(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), top)

	base, err := s.Sbrk(100)
	require.NoError(t, err)
	require.Equal(t, uint64(0), base)

	base, err = s.Sbrk(28)
	require.NoError(t, err)
	require.Equal(t, uint64(100), base)
	require.Equal(t, uint64(128), s.Top())
	require.Len(t, s.Bytes(), 128)
}

func TestSlice_NoPartialSuccess(t *testing.T) {
	s := NewSlice(1024)
	_, err := s.Sbrk(1000)
	require.NoError(t, err)

	_, err = s.Sbrk(25)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, uint64(1000), s.Top(), "failed Sbrk must not move the break")

	_, err = s.Sbrk(24)
	require.NoError(t, err)
	require.Equal(t, s.Limit(), s.Top())
}

func TestSlice_RejectsNegative(t *testing.T) {
	s := NewSlice(64)
	_, err := s.Sbrk(-8)
	require.True(t, errors.Is(err, ErrNegative))
}

func TestSlice_BytesStableAcrossGrowth(t *testing.T) {
	s := NewSlice(1 << 16)
	_, err := s.Sbrk(16)
	require.NoError(t, err)
	first := s.Bytes()
	first[0] = 0xAB

	_, err = s.Sbrk(4096)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), s.Bytes()[0])
	require.Same(t, &first[0], &s.Bytes()[0], "growth must not relocate the region")
}

func TestSlice_Closed(t *testing.T) {
	s := NewSlice(64)
	require.NoError(t, s.Close())
	_, err := s.Sbrk(8)
	require.ErrorIs(t, err, ErrClosed)
}
