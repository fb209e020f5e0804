// Package treecompress turns the ExtSort-ordered DiskNode stream TreeGen
// produces into the compact, offset-addressed tree file TreeSearch reads.
//
// Every node's child offsets are varint-encoded relative to the node's
// own position, and a child's offset is only known once the child
// itself has been written -- which, given the NodeID sort order, always
// happens first. TreeCompress exploits that by building its output
// back-to-front: each node (and the final header) is appended with its
// fields varint-encoded in mirror-image byte order, to a stream that
// itself grows in reverse. A single whole-stream byte reversal at the
// end turns this into an ordinary forward-readable file, with the
// 8-root header first and the points' containing leaves last.
package treecompress
