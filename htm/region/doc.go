// Package region implements vector and spherical-coordinate arithmetic
// plus the spherical region shapes (circle, ellipse, convex polygon, box)
// used throughout go-tinyhtm.
//
// # Unit vectors
//
// Most operations require a V3 to be a unit vector (on the sphere). Callers
// that construct a V3 from longitude/latitude via FromSpherical always get
// a unit vector; raw V3 literals do not and must be Normalized first.
//
// # Shapes
//
// Circle, Ellipse and ConvexPoly each expose Contains (pointwise
// membership test) and are consumed by the htm/coverage package for
// triangle-vs-region classification. Construction helpers (FromVertices,
// FromHull, FromNgon, FromBox, Pad) validate the invariants described in
// the package-level comments on ConvexPoly.
package region
