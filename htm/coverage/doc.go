// Package coverage classifies the spatial relationship between an HTM
// triangle and a region shape (Circle, Ellipse, ConvexPoly): DISJOINT,
// INTERSECT, CONTAINS (triangle fully contains the region), or INSIDE
// (triangle lies fully inside the region). RangeCover uses these codes to
// decide whether to emit, descend, or prune a branch of the HTM tree.
package coverage
