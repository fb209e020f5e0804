package coverage

import (
	"math"

	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
)

// Ellipse classifies tri against e. Mirrors _htm_s2ellipse_htmcov:
// vertex-containment count first (region.Ellipse.Contains), then an
// edge/boundary intersection test, then a center-in-triangle check for
// the remaining CONTAINS/DISJOINT split.
func Ellipse(tri htm.Tri, e region.Ellipse) Code {
	nin := 0
	for _, v := range tri.Vert {
		if e.Contains(v) {
			nin++
		}
	}
	if nin == 3 {
		return Inside
	}
	if nin != 0 {
		return Intersect
	}

	if ellipseEdgeIsect(tri.Vert[0], tri.Vert[1], e) ||
		ellipseEdgeIsect(tri.Vert[1], tri.Vert[2], e) ||
		ellipseEdgeIsect(tri.Vert[2], tri.Vert[0], e) {
		return Intersect
	}

	if e.Center.Dot(tri.Edge[0]) >= 0 && e.Center.Dot(tri.Edge[1]) >= 0 && e.Center.Dot(tri.Edge[2]) >= 0 {
		return Contains
	}
	return Disjoint
}

// ellipseEdgeIsect reports whether the geodesic edge from v1 to v2
// crosses the ellipse boundary vᵀMv = 0. Writing a point of the plane
// through v1, v2 as a*(v1+v2) + b*(v2-v1) and fixing a=1 (solutions are
// scale-invariant) reduces the boundary equation to the quadratic
// c22*b^2 + 2*c21*b + c11 = 0; a root with b in [-1,1] lies on the edge.
// The (v1+v2, v2-v1) basis is chosen for numerical stability when v1 and
// v2 are nearly identical.
func ellipseEdgeIsect(v1, v2 region.V3, e region.Ellipse) bool {
	e1 := v1.Add(v2)
	e2 := v2.Sub(v1)
	c11 := e.Quad(e1)
	c22 := e.Quad(e2)
	c21 := quadCross(e1, e2, e)

	inHemi := func(v region.V3) bool {
		return e.ADeg >= 90 || v.Dot(e.Center) >= 0
	}

	if c11 == 0 {
		// v1+v2 itself is a solution and lies on the edge (b=0).
		if inHemi(e1) {
			return true
		}
		if c22 == 0 || math.Abs(c22) < math.Abs(2*c21) {
			return false
		}
		v := e2.Scale(-2 * c21 / c22).Add(e1)
		return v.Dot(e.Center) >= 0
	}
	if c22 == 0 {
		if c21 == 0 {
			return false
		}
		if math.Abs(c11) <= math.Abs(2*c21) {
			if e.ADeg >= 90 {
				return true
			}
			v := e2.Scale(-0.5 * c11 / c21).Add(e1)
			return v.Dot(e.Center) >= 0
		}
		return false
	}

	delta := c21*c21 - c11*c22
	if delta < 0 {
		return false
	}
	delta = math.Sqrt(delta)

	if math.Abs(c22) >= math.Abs(delta-c21) {
		if e.ADeg >= 90 {
			return true
		}
		v := e2.Scale((delta - c21) / c22).Add(e1)
		return v.Dot(e.Center) >= 0
	}
	if math.Abs(c22) >= math.Abs(delta+c21) {
		if e.ADeg >= 90 {
			return true
		}
		v := e2.Scale(-(delta + c21) / c22).Add(e1)
		return v.Dot(e.Center) >= 0
	}
	return false
}

// quadCross returns a'*M*b for the symmetric form M underlying e, the
// cross term of the quadratic obtained by substituting a*(a1)+b*(a2) into
// vᵀMv and expanding (M symmetric, so a'Mb == b'Ma).
func quadCross(a, b region.V3, e region.Ellipse) float64 {
	return a.X*b.X*e.Mxx + a.Y*b.Y*e.Myy + a.Z*b.Z*e.Mzz +
		(a.X*b.Y+a.Y*b.X)*e.Mxy +
		(a.X*b.Z+a.Z*b.X)*e.Mxz +
		(a.Y*b.Z+a.Z*b.Y)*e.Myz
}
