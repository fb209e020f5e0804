package varint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripBoundaries(t *testing.T) {
	values := []uint64{
		0, 1, 126, 127, 128,
		1<<14 - 1, 1 << 14,
		1<<21 - 1, 1 << 21,
		1<<28 - 1, 1 << 28,
		1<<35 - 1, 1 << 35,
		1<<42 - 1, 1 << 42,
		1<<49 - 1, 1 << 49,
		1<<56 - 1, 1 << 56,
		math.MaxUint64,
	}
	for _, v := range values {
		enc := Encode(nil, v)
		require.LessOrEqual(t, len(enc), MaxLen)

		got, n, err := Decode(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, v, got)
	}
}

func TestEncodeLengthGrowsWithMagnitude(t *testing.T) {
	require.Len(t, Encode(nil, 0), 1)
	require.Len(t, Encode(nil, 127), 1)
	require.Len(t, Encode(nil, 128), 2)
	require.Len(t, Encode(nil, math.MaxUint64), 9)
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	enc := Encode(nil, uint64(1)<<40)
	_, _, err := Decode(enc[:len(enc)-1])
	require.Error(t, err)

	_, _, err = Decode(nil)
	require.Error(t, err)
}

func TestEncodeReverseIsMirrorOfEncode(t *testing.T) {
	for _, v := range []uint64{0, 200, 1 << 20, math.MaxUint64} {
		fwd := Encode(nil, v)
		rev := EncodeReverse(nil, v)
		require.Equal(t, len(fwd), len(rev))
		for i := range fwd {
			require.Equal(t, fwd[i], rev[len(rev)-1-i])
		}
	}
}

func TestSequentialDecode(t *testing.T) {
	var buf []byte
	values := []uint64{0, 1, 300, 70000, math.MaxUint32, math.MaxUint64}
	for _, v := range values {
		buf = Encode(buf, v)
	}
	off := 0
	for _, want := range values {
		got, n, err := Decode(buf[off:])
		require.NoError(t, err)
		require.Equal(t, want, got)
		off += n
	}
	require.Equal(t, len(buf), off)
}
