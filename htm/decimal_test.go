package htm

import (
	"testing"

	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/stretchr/testify/require"
)

func TestDecimalRoundTrip(t *testing.T) {
	pts := []region.V3{
		{X: 1, Y: 0.2, Z: 0.3},
		{X: -0.4, Y: 1, Z: 0.1},
		{X: 0.2, Y: -0.6, Z: 1},
	}
	for _, v := range pts {
		for l := 0; l <= DecMaxLevel; l++ {
			id, err := Of(v, l)
			require.NoError(t, err)

			dec := DecEncode(id)
			require.NotZero(t, dec)
			require.Equal(t, id, DecDecode(dec))
		}
	}
}

func TestDecimalEncodeRejectsAboveMaxLevel(t *testing.T) {
	v := region.V3{X: 0.3, Y: 0.4, Z: 0.9}
	id, err := Of(v, DecMaxLevel+1)
	require.NoError(t, err)
	require.Zero(t, DecEncode(id))
}

func TestDecimalDecodeRejectsMalformed(t *testing.T) {
	require.Zero(t, DecDecode(0))
	require.Zero(t, DecDecode(-100))
	require.Zero(t, DecDecode(1))   // too short: no root digit
	require.Zero(t, DecDecode(29))  // leading digit isn't 1
	require.Zero(t, DecDecode(19))  // root digit 9 out of range
	require.Zero(t, DecDecode(104)) // level-1 child digit 4 out of range
}
