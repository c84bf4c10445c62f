package png

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnfilterNone(t *testing.T) {
	cur := []byte{ftNone, 1, 2, 3}
	prev := []byte{9, 9, 9}
	require.NoError(t, unfilter(cur, prev, 1))
	require.Equal(t, []byte{1, 2, 3}, cur[1:])
}

func TestUnfilterSub(t *testing.T) {
	// delay=1: each byte after the first predicts from its left neighbor.
	cur := []byte{ftSub, 10, 5, 5}
	prev := make([]byte, 3)
	require.NoError(t, unfilter(cur, prev, 1))
	require.Equal(t, []byte{10, 15, 20}, cur[1:])
}

func TestUnfilterUp(t *testing.T) {
	cur := []byte{ftUp, 1, 2, 3}
	prev := []byte{10, 20, 30}
	require.NoError(t, unfilter(cur, prev, 1))
	require.Equal(t, []byte{11, 22, 33}, cur[1:])
}

func TestUnfilterAverage(t *testing.T) {
	cur := []byte{ftAverage, 10, 10}
	prev := []byte{0, 20}
	// first byte: +prev[0]/2 = 10+0 = 10
	// second byte: +avg(cur[0]=10, prev[1]=20) = 10 + 15 = 25
	require.NoError(t, unfilter(cur, prev, 1))
	require.Equal(t, []byte{10, 25}, cur[1:])
}

func TestUnfilterPaeth(t *testing.T) {
	// With an all-zero previous row and delay=1, Paeth degenerates to Sub
	// (the predictor picks "left" whenever above/above-left are zero and
	// left is nonzero).
	cur := []byte{ftPaeth, 5, 5, 5}
	prev := make([]byte, 3)
	require.NoError(t, unfilter(cur, prev, 1))
	require.Equal(t, []byte{5, 10, 15}, cur[1:])
}

func TestUnfilterUnknownType(t *testing.T) {
	cur := []byte{9, 1, 2, 3}
	prev := make([]byte, 3)
	err := unfilter(cur, prev, 1)
	require.Error(t, err)
}

func TestUnfilterRespectsDelayAcrossPixelBoundary(t *testing.T) {
	// delay=3 (an RGB8 row): Sub predicts from 3 bytes back, not 1.
	cur := []byte{ftSub, 10, 20, 30, 1, 2, 3}
	prev := make([]byte, 6)
	require.NoError(t, unfilter(cur, prev, 3))
	require.Equal(t, []byte{10, 20, 30, 11, 22, 33}, cur[1:])
}
