package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCircleContains(t *testing.T) {
	center := Spherical{LonDeg: 0, LatDeg: 0}.ToV3()
	c := NewCircle(center, 10)
	inside := Spherical{LonDeg: 5, LatDeg: 0}.ToV3()
	outside := Spherical{LonDeg: 30, LatDeg: 0}.ToV3()
	require.True(t, c.Contains(inside))
	require.False(t, c.Contains(outside))
	require.True(t, c.Contains(center))
}

func TestEllipseCircularCaseMatchesCircle(t *testing.T) {
	center := Spherical{LonDeg: 10, LatDeg: 20}.ToV3()
	e, ok := NewEllipse(center, 10, 10, 0)
	require.True(t, ok)
	c := NewCircle(center, 10)

	for _, lon := range []float64{5, 10, 15, 20, 25} {
		for _, lat := range []float64{10, 20, 30} {
			v := Spherical{LonDeg: lon, LatDeg: lat}.ToV3()
			require.Equal(t, c.Contains(v), e.Contains(v), "lon=%v lat=%v", lon, lat)
		}
	}
}

func TestEllipseCenterIsInside(t *testing.T) {
	center := Spherical{LonDeg: 40, LatDeg: -10}.ToV3()
	e, ok := NewEllipse(center, 20, 5, 45)
	require.True(t, ok)
	require.True(t, e.Contains(center))
	require.LessOrEqual(t, e.Quad(center), 0.0)
}

func TestNgonContainsCenter(t *testing.T) {
	center := Spherical{LonDeg: 0, LatDeg: 0}.ToV3()
	p, ok := FromNgon(center, 10, 6)
	require.True(t, ok)
	require.Len(t, p.V, 6)
	require.True(t, p.Contains(center))
}

func TestBoxContainsCenterNotFarPoint(t *testing.T) {
	center := Spherical{LonDeg: 100, LatDeg: 0}.ToV3()
	b, ok := FromBox(center, 10, 10, 0)
	require.True(t, ok)
	require.True(t, b.Contains(center))
	far := Spherical{LonDeg: 170, LatDeg: 0}.ToV3()
	require.False(t, b.Contains(far))
}

func TestHullContainsAllInputPoints(t *testing.T) {
	pts := []V3{
		Spherical{LonDeg: 0, LatDeg: 0}.ToV3(),
		Spherical{LonDeg: 10, LatDeg: 0}.ToV3(),
		Spherical{LonDeg: 10, LatDeg: 10}.ToV3(),
		Spherical{LonDeg: 0, LatDeg: 10}.ToV3(),
		Spherical{LonDeg: 5, LatDeg: 5}.ToV3(), // interior point, should be dropped
	}
	hull, ok := FromHull(pts)
	require.True(t, ok)
	require.GreaterOrEqual(t, len(hull.V), 3)
	for _, p := range pts {
		require.True(t, hull.Contains(p), "hull must contain every input point")
	}
	for _, v := range hull.V {
		found := false
		for _, p := range pts {
			if v == p {
				found = true
				break
			}
		}
		require.True(t, found, "hull vertex must be one of the input points")
	}
}

func TestPadGrowsPolygon(t *testing.T) {
	center := Spherical{LonDeg: 0, LatDeg: 0}.ToV3()
	p, ok := FromNgon(center, 5, 4)
	require.True(t, ok)

	padded, ok := p.Pad(2)
	require.True(t, ok)

	// A vertex of the original polygon, on its old boundary, should now
	// be inside the padded one.
	nearVertex := p.V[0]
	require.True(t, padded.Contains(nearVertex))
}

func TestPadOverPaddingFails(t *testing.T) {
	center := Spherical{LonDeg: 0, LatDeg: 0}.ToV3()
	p, ok := FromNgon(center, 2, 4)
	require.True(t, ok)
	_, ok = p.Pad(89)
	require.False(t, ok)
}
