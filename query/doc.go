// Package query is the shape-polymorphic entry point callers use to ask
// Count/Range/Enumerate/CoveringRanges questions without knowing whether
// the answer comes from a compressed tree file or a linear scan: Open
// picks treesearch when a tree file is present next to the records, and
// scanfallback otherwise, per the corpus's degradation contract.
package query
