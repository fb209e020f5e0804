package region

import (
	"math"
	"sort"
)

// ConvexPoly is a convex spherical polygon: an ordered, counter-clockwise
// (as seen from outside the sphere) loop of N>=3 vertex unit vectors, the
// N right-handed edge-plane normals E[i] = V[i] x V[(i+1)%N], and the
// unnormalized vertex sum VSum (a quick in-polygon witness point).
type ConvexPoly struct {
	V    []V3
	E    []V3
	VSum V3
}

// Contains reports whether unit vector v lies inside every edge plane,
// i.e. v·E[i] >= 0 for all i.
func (p ConvexPoly) Contains(v V3) bool {
	for _, e := range p.E {
		if v.Dot(e) < 0 {
			return false
		}
	}
	return true
}

const hemisphericalEps = 1e-9

// isHemispherical reports whether there exists a unit vector h with
// h·v > 0 for every v in vs. The (unnormalized) vector sum is used as a
// witness: it works whenever vs doesn't contain antipodal or
// near-degenerate configurations, which is the same assumption the
// reference implementation makes.
func isHemispherical(vs []V3) (V3, bool) {
	var sum V3
	for _, v := range vs {
		sum = sum.Add(v)
	}
	h, ok := sum.Normalized()
	if !ok {
		return V3{}, false
	}
	for _, v := range vs {
		if h.Dot(v) <= hemisphericalEps {
			return V3{}, false
		}
	}
	return h, true
}

// FromVertices builds a ConvexPoly from an ordered, counter-clockwise loop
// of unit vertices. It validates hemisphericality and convexity (for
// every pair of non-adjacent edges, e_i . v_j >= 0 for all j not an
// endpoint of edge i) and returns false if either fails.
func FromVertices(vs []V3) (ConvexPoly, bool) {
	n := len(vs)
	if n < 3 {
		return ConvexPoly{}, false
	}
	if _, ok := isHemispherical(vs); !ok {
		return ConvexPoly{}, false
	}

	e := make([]V3, n)
	var vsum V3
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := vs[i].Cross(vs[j])
		if edge.IsZero() {
			return ConvexPoly{}, false // repeated/antipodal consecutive vertices
		}
		e[i] = edge
		vsum = vsum.Add(vs[i])
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i || j == (i+1)%n {
				continue // endpoints of edge i
			}
			if e[i].Dot(vs[j]) < -hemisphericalEps {
				return ConvexPoly{}, false
			}
		}
	}

	return ConvexPoly{V: append([]V3(nil), vs...), E: e, VSum: vsum}, true
}

// FromHull computes the spherical convex hull of a hemispherical set of
// distinct points: it picks the point most antipodal to the centroid as
// anchor, sorts the rest by angle around the anchor in a local tangent
// frame, and drops non-convex vertices with a Graham-style stack scan. Fails if the input isn't
// hemispherical or has fewer than 3 distinct directions.
func FromHull(points []V3) (ConvexPoly, bool) {
	h, ok := isHemispherical(points)
	if !ok {
		return ConvexPoly{}, false
	}
	// Anchor: the point whose direction is "most extreme" relative to the
	// hemisphere witness, i.e. minimal h.Dot(v). This seeds a stable
	// reference for the angular sort below.
	anchor := 0
	best := math.Inf(1)
	for i, v := range points {
		d := h.Dot(v)
		if d < best {
			best, anchor = d, i
		}
	}
	a := points[anchor]
	north, east := NorthEastFrame(a)

	type angled struct {
		v   V3
		ang float64
	}
	rest := make([]angled, 0, len(points)-1)
	for i, v := range points {
		if i == anchor {
			continue
		}
		tp := v.Sub(a.Scale(a.Dot(v)))
		x, y := tp.Dot(east), tp.Dot(north)
		if x == 0 && y == 0 {
			continue // coincident with anchor
		}
		rest = append(rest, angled{v: v, ang: math.Atan2(y, x)})
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].ang < rest[j].ang })

	ordered := make([]V3, 0, len(rest)+1)
	ordered = append(ordered, a)
	for _, r := range rest {
		ordered = append(ordered, r.v)
	}

	hull := grahamSphericalScan(ordered)
	if len(hull) < 3 {
		return ConvexPoly{}, false
	}
	return FromVertices(hull)
}

// grahamSphericalScan removes non-convex vertices from an angularly
// sorted loop via a stack sweep: a vertex is dropped whenever the
// previous edge turns the "wrong way" relative to it.
func grahamSphericalScan(pts []V3) []V3 {
	stack := make([]V3, 0, len(pts))
	for _, p := range pts {
		for len(stack) >= 2 {
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			// Convex turn: p must be on the positive side of edge a->b.
			if a.Cross(b).Dot(p) >= -hemisphericalEps {
				break
			}
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, p)
	}
	return stack
}

// FromNgon builds a regular spherical n-gon centered at center with
// angular circumradius radiusDeg.
func FromNgon(center V3, radiusDeg float64, n int) (ConvexPoly, bool) {
	c, ok := center.Normalized()
	if !ok || n < 3 {
		return ConvexPoly{}, false
	}
	north, east := NorthEastFrame(c)
	r := radiusDeg * degToRad
	vs := make([]V3, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		dir := east.Scale(math.Cos(theta)).Add(north.Scale(math.Sin(theta)))
		vs[i] = c.Scale(math.Cos(r)).Add(dir.Scale(math.Sin(r)))
	}
	return FromVertices(vs)
}

// FromBox builds a spherical "rectangle" of angular width x height
// centered at center, rotated by rotationDeg east of north.
func FromBox(center V3, widthDeg, heightDeg, rotationDeg float64) (ConvexPoly, bool) {
	c, ok := center.Normalized()
	if !ok {
		return ConvexPoly{}, false
	}
	north, east := NorthEastFrame(c)
	rot := rotationDeg * degToRad
	n := north.Scale(math.Cos(rot)).Add(east.Scale(math.Sin(rot)))
	e := north.Scale(-math.Sin(rot)).Add(east.Scale(math.Cos(rot)))

	hw, hh := widthDeg/2*degToRad, heightDeg/2*degToRad
	corner := func(sx, sy float64) V3 {
		d := n.Scale(sy).Add(e.Scale(sx))
		dn, ok := d.Normalized()
		ang := math.Hypot(hw*sx, hh*sy)
		if !ok {
			return c
		}
		return c.Scale(math.Cos(ang)).Add(dn.Scale(math.Sin(ang)))
	}
	vs := []V3{corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)}
	return FromVertices(vs)
}

// Pad moves each edge of p outward by radiusDeg and re-intersects
// consecutive padded edges to recover new vertices. Fails (returns false)
// on over-padding: when two adjacent padded edge planes coincide, or when
// the new vertices no longer form a valid convex polygon, as happens once
// radiusDeg plus the polygon's inradius nears 90 degrees.
func (p ConvexPoly) Pad(radiusDeg float64) (ConvexPoly, bool) {
	n := len(p.V)
	if n < 3 {
		return ConvexPoly{}, false
	}
	r := radiusDeg * degToRad
	cosR, sinR := math.Cos(r), math.Sin(r)

	// A great-circle edge with inward normal e is pushed outward by r by
	// replacing e with cos(r)*e + sin(r)*u, where u is the unit vector in
	// the edge's plane pointing toward the polygon interior: the new
	// boundary then lies r beyond the old edge, on its exterior side.
	newE := make([]V3, n)
	for i := 0; i < n; i++ {
		e := p.E[i]
		en, ok := e.Normalized()
		if !ok {
			return ConvexPoly{}, false
		}
		// Interior witness direction, perpendicular component to e.
		w := p.VSum.Sub(en.Scale(p.VSum.Dot(en)))
		u, ok := w.Normalized()
		if !ok {
			return ConvexPoly{}, false
		}
		newE[i] = en.Scale(cosR).Add(u.Scale(sinR))
	}

	vs := make([]V3, n)
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		v, ok := newE[prev].Cross(newE[i]).Normalized()
		if !ok {
			return ConvexPoly{}, false // anti-parallel: over-padded
		}
		// Pick the sign that lies in the same hemisphere as the
		// original vertex it replaces.
		if v.Dot(p.V[i]) < 0 {
			v = v.Neg()
		}
		vs[i] = v
	}
	return FromVertices(vs)
}
