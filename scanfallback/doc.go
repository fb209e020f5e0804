// Package scanfallback answers the same Count/Range/Enumerate queries as
// treesearch, but without a compressed tree file: it scans every record
// in an entrystore.Store in order, applying shape.Contains to each. It
// exists so a point file can be queried before (or without ever) being
// indexed, at the cost of O(n) work per query instead of O(log n).
package scanfallback
