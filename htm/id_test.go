package htm

import (
	"testing"

	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/stretchr/testify/require"
)

func TestOfRejectsZeroVector(t *testing.T) {
	_, err := Of(region.V3{}, 5)
	require.Error(t, err)
}

func TestOfRejectsBadLevel(t *testing.T) {
	_, err := Of(region.V3{X: 1}, MaxLevel+1)
	require.Error(t, err)

	_, err = Of(region.V3{X: 1}, -1)
	require.Error(t, err)
}

func TestOfLevelZeroMatchesRoot(t *testing.T) {
	v := region.V3{X: 0.2, Y: 0.3, Z: 0.9}
	id, err := Of(v, 0)
	require.NoError(t, err)

	u, ok := v.Normalized()
	require.True(t, ok)
	want := int64(RootOf(u)) + 8
	require.Equal(t, want, int64(id))
}

func TestOfIsStableUnderRescale(t *testing.T) {
	v := region.V3{X: 1, Y: 2, Z: 3}
	scaled := region.V3{X: 10, Y: 20, Z: 30}

	id1, err := Of(v, 12)
	require.NoError(t, err)
	id2, err := Of(scaled, 12)
	require.NoError(t, err)
	require.Equal(t, id1, id2)
}

func TestOfDeepensMonotonically(t *testing.T) {
	v := region.V3{X: 0.5, Y: -0.3, Z: 0.8}
	prevLevel := -1
	for l := 0; l <= 10; l++ {
		id, err := Of(v, l)
		require.NoError(t, err)
		lvl := Level(id)
		require.Greater(t, lvl, prevLevel)
		prevLevel = lvl
	}
}
