package htm

import (
	"testing"

	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/stretchr/testify/require"
)

func TestLevelRoundTrip(t *testing.T) {
	pts := []region.V3{
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0.2, Z: 0.3},
		{X: 0.1, Y: -0.9, Z: 0.4},
		{X: 0.2, Y: 0.2, Z: -0.9},
	}
	for _, v := range pts {
		for l := 0; l <= 20; l++ {
			id, err := Of(v, l)
			require.NoError(t, err)
			require.Equal(t, l, Level(id))
		}
	}
}

func TestLevelRejectsMalformed(t *testing.T) {
	require.Equal(t, -1, Level(0))
	require.Equal(t, -1, Level(-5))
	require.Equal(t, -1, Level(1))  // below the smallest valid id (root ids start at 8)
	require.Equal(t, -1, Level(5))  // bit length 3, shorter than any root id
	require.Equal(t, -1, Level(Id(1)<<61))
}
