package htm

import (
	"testing"

	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/stretchr/testify/require"
)

func TestIdToTriRejectsMalformedId(t *testing.T) {
	_, err := IdToTri(0)
	require.Error(t, err)
}

func TestIdToTriContainsSourcePoint(t *testing.T) {
	pts := []region.V3{
		{X: 1, Y: 0.1, Z: 0.2},
		{X: -0.3, Y: 1, Z: 0.4},
		{X: 0.4, Y: -0.4, Z: 1},
		{X: -0.2, Y: -0.3, Z: -1},
	}
	for _, v := range pts {
		for l := 0; l <= 10; l++ {
			id, err := Of(v, l)
			require.NoError(t, err)

			tri, err := IdToTri(id)
			require.NoError(t, err)

			u, _ := v.Normalized()
			for _, e := range tri.Edge {
				require.GreaterOrEqual(t, e.Dot(u), -1e-9)
			}
		}
	}
}

func TestIdToTriCenterInsideBoundRadius(t *testing.T) {
	v := region.V3{X: 0.3, Y: 0.5, Z: 0.8}
	id, err := Of(v, 8)
	require.NoError(t, err)

	tri, err := IdToTri(id)
	require.NoError(t, err)

	u, _ := v.Normalized()
	require.LessOrEqual(t, region.AngularDistance(tri.Center, u), tri.BoundRadius+1e-9)
}
