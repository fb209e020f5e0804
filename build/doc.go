// Package build orchestrates the full index construction pipeline:
// ExtSort the record file into HTM id order, fold the sorted stream
// into an in-memory tree via treebuild, ExtSort the resulting DiskNode
// stream into NodeID order, and compress it into a final tree file via
// treecompress. It corresponds to the original construction driver's
// sort_and_index step, minus the spherical-to-vector conversion and
// HDF5 dataset append that belong to the input-ingestion boundary this
// library leaves to its caller.
package build
