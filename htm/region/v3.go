package region

import "math"

// V3 is an ordered triple of finite doubles. It may be non-unit except
// where a unit vector is contractually required (documented per function).
type V3 struct {
	X, Y, Z float64
}

// Dot returns the dot product v·w.
func (v V3) Dot(w V3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the right-handed cross product v×w.
func (v V3) Cross(w V3) V3 {
	return V3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Add returns v+w.
func (v V3) Add(w V3) V3 { return V3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v-w.
func (v V3) Sub(w V3) V3 { return V3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v V3) Scale(s float64) V3 { return V3{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v V3) Neg() V3 { return V3{-v.X, -v.Y, -v.Z} }

// Norm2 returns the squared Euclidean norm of v.
func (v V3) Norm2() float64 { return v.Dot(v) }

// Norm returns the Euclidean norm of v.
func (v V3) Norm() float64 { return math.Sqrt(v.Norm2()) }

// IsZero reports whether v is the null vector (within an exact check, as
// used by the construction-time null-pointer-equivalent check).
func (v V3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Finite reports whether every component of v is a finite IEEE-754 double.
func (v V3) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Normalized returns v scaled to unit length. The second return is false
// if v is the null vector (or too close to it to normalize safely).
func (v V3) Normalized() (V3, bool) {
	n := v.Norm()
	if n == 0 {
		return V3{}, false
	}
	return v.Scale(1 / n), true
}

// Dist2 returns the squared Euclidean (chord) distance between v and w.
func (v V3) Dist2(w V3) float64 {
	d := v.Sub(w)
	return d.Norm2()
}

// AngularDistance returns the great-circle angle in radians between two
// unit vectors, computed via the numerically stable atan2(|v×w|, v·w)
// form rather than acos(v·w) (which loses precision for small angles).
func AngularDistance(v, w V3) float64 {
	cross := v.Cross(w)
	return math.Atan2(cross.Norm(), v.Dot(w))
}

// ChordLength2 returns the squared chord length 4*sin²(theta/2)
// corresponding to an angular radius theta given in radians. This is the
// quantity compared directly against V3.Dist2 between unit vectors,
// avoiding a trip through acos/asin at classification time.
func ChordLength2(thetaRadians float64) float64 {
	s := math.Sin(thetaRadians / 2)
	return 4 * s * s
}

// Midpoint returns normalize(v+w), the point on the great circle through v
// and w equidistant from both — used by the HTM mid-edge subdivision.
func Midpoint(v, w V3) V3 {
	m, ok := v.Add(w).Normalized()
	if !ok {
		// v and w are antipodal; no well-defined midpoint. Return the
		// zero vector, which callers treat as a degenerate edge.
		return V3{}
	}
	return m
}
