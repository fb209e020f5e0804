// Package htm implements the Hierarchical Triangular Mesh point-to-ID
// mapping: assigning a 64-bit identifier to a unit vector at a given
// subdivision level, inverting an ID back to its triangle, recovering an
// ID's level, and the decimal compatibility encoding used by IRSA
// catalogs.
//
// # Identifiers
//
// An Id is a signed 64-bit integer. Its top 4 bits (a leading 1 followed
// by 3 root-selector bits) name one of the 8 root triangles (S0..S3,
// N0..N3); every following pair of bits selects one of 4 children. A
// level-L id therefore occupies exactly 2L+4 bits, and Level recovers L
// from an id's bit length alone.
//
// # Subdivision
//
// Subdividing a triangle (v0,v1,v2) produces four children: three corner
// children (each keeping one original vertex and the two adjacent
// edge midpoints) and one central child (the three midpoints themselves,
// wound like its parent, with edge normals negated since the midpoint-plane
// normals point into the corner children). Of and IdToTri both walk this ladder;
// TreeSearch in the sibling treesearch package reuses the same
// prep/make functions so the per-level bookkeeping (3 midpoints, 3
// subdivision-plane normals) is never duplicated.
package htm
