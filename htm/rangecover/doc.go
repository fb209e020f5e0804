// Package rangecover computes the set of level-L HTM id ranges whose
// union covers a region shape, descending the conceptual HTM tree from
// each of the 8 roots and coalescing adjacent ranges as it goes. When the
// range count exceeds a caller-supplied budget it adaptively coarsens:
// the target depth is lowered and the list already produced is
// re-coalesced at the coarser granularity, repeating until the budget is
// met or depth 0 is reached.
package rangecover
