// Package treebuild implements TreeGen: it walks an HTM-id-sorted point
// file and produces an unsorted stream of DiskNode records describing
// the HTM tree over those points, ready to be sorted by node ID
// (internal/extsort) and compressed (internal/treecompress).
//
// Tree layout follows Alstrup's Split-and-Refine, using Clark and
// Munro's greedy bottom-up method as the per-block-size layout
// black-box, across NLOD fixed block sizes from 2 MiB down to one cache
// line. Because nodes are produced in post-order (children before
// parents), layout for every block size can be computed in a single
// pass: a node is written to disk the moment it has been assigned a
// block ID at every size.
package treebuild
