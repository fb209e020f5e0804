package coverage

import (
	"math"

	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
)

// Polygon classifies tri against poly. Mirrors _htm_s2cpoly_htmcov:
// vertex-containment count first, then the edge-intersection LP test
// below, then a vertex-sum-witness-behind-every-edge-plane check for the
// remaining CONTAINS/DISJOINT split.
func Polygon(tri htm.Tri, poly region.ConvexPoly) Code {
	nin := 0
	for _, v := range tri.Vert {
		if poly.Contains(v) {
			nin++
		}
	}
	if nin == 3 {
		return Inside
	}
	if nin != 0 {
		return Intersect
	}

	if isectTest(tri.Vert[0], tri.Vert[1], tri.Edge[0], poly) ||
		isectTest(tri.Vert[1], tri.Vert[2], tri.Edge[1], poly) ||
		isectTest(tri.Vert[2], tri.Vert[0], tri.Edge[2], poly) {
		return Intersect
	}

	if poly.VSum.Dot(tri.Edge[0]) >= 0 && poly.VSum.Dot(tri.Edge[1]) >= 0 && poly.VSum.Dot(tri.Edge[2]) >= 0 {
		return Contains
	}
	return Disjoint
}

// isectTest reports whether the geodesic edge (v1,v2) with inward plane
// normal n crosses poly.
//
// A solution v=(x,y,z) on the edge's great circle and inside every
// polygon edge half-space must satisfy:
//
//	v.n = 0, v != 0
//	v.(n x v1) >= 0
//	v.(v2 x n) >= 0
//	v.e_i >= 0   for every polygon edge normal e_i
//
// Assuming (wlog, by symmetry) n.z != 0, eliminate z = -(x*nx+y*ny)/nz and
// substitute into each inequality to get x*a_i + y*b_i >= 0. Solutions are
// scale-invariant, so fix y=1 and look for an x solving x*a_i+b_i>=0 for
// every i; failing that try y=-1 (x*a_i-b_i>=0); failing that the
// remaining case y=0 holds iff every nonzero a_i shares a sign.
func isectTest(v1, v2, n region.V3, poly region.ConvexPoly) bool {
	nv := len(poly.E)
	a := make([]float64, nv+2)
	b := make([]float64, nv+2)
	c0 := n.Cross(v1)
	c1 := v2.Cross(n)

	switch {
	case n.Z != 0:
		s := sign(n.Z)
		a[0], b[0] = s*(c0.X*n.Z-c0.Z*n.X), s*(c0.Y*n.Z-c0.Z*n.Y)
		a[1], b[1] = s*(c1.X*n.Z-c1.Z*n.X), s*(c1.Y*n.Z-c1.Z*n.Y)
		for i, e := range poly.E {
			a[i+2] = s * (e.X*n.Z - e.Z*n.X)
			b[i+2] = s * (e.Y*n.Z - e.Z*n.Y)
		}
	case n.Y != 0:
		s := sign(n.Y)
		a[0], b[0] = s*(c0.X*n.Y-c0.Y*n.X), s*c0.Z*n.Y
		a[1], b[1] = s*(c1.X*n.Y-c1.Y*n.X), s*c1.Z*n.Y
		for i, e := range poly.E {
			a[i+2] = s * (e.X*n.Y - e.Y*n.X)
			b[i+2] = s * e.Z * n.Y
		}
	case n.X != 0:
		s := sign(n.X)
		a[0], b[0] = s*c0.Y*n.X, s*c0.Z*n.X
		a[1], b[1] = s*c1.Y*n.X, s*c1.Z*n.X
		for i, e := range poly.E {
			a[i+2] = s * e.Y * n.X
			b[i+2] = s * e.Z * n.X
		}
	default:
		return false
	}

	min1, max1 := math.Inf(-1), math.Inf(1)
	minM1, maxM1 := math.Inf(-1), math.Inf(1)
	neg, pos := 0, 0
	for i := range a {
		ai, bi := a[i], b[i]
		switch {
		case ai == 0:
			if bi < 0 {
				min1, max1 = math.Inf(1), math.Inf(-1)
			} else if bi > 0 {
				minM1, maxM1 = math.Inf(1), math.Inf(-1)
			}
		case ai < 0:
			neg++
			d := -bi / ai
			if d < max1 {
				max1 = d
			}
			if -d < maxM1 {
				maxM1 = -d
			}
		default:
			pos++
			d := -bi / ai
			if d > min1 {
				min1 = d
			}
			if -d > minM1 {
				minM1 = -d
			}
		}
	}
	if min1 <= max1 || minM1 <= maxM1 {
		return true
	}
	return neg == 0 || pos == 0
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	return -1
}
