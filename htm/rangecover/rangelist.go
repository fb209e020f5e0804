package rangecover

import "github.com/Caltech-IPAC/go-tinyhtm/htm"

// Range is an inclusive, contiguous span of HTM ids at a single
// subdivision level.
type Range struct {
	Min, Max htm.Id
}

// RangeList is a sorted list of disjoint, non-adjacent Ranges, built by
// repeated calls to Add.
type RangeList struct {
	Ranges []Range
}

// Add appends [min,max], coalescing it into the last range if the two are
// contiguous (min immediately follows the previous max). Ranges must be
// added in increasing order, which depth-first HTM traversal in child
// order 0,1,2,3 naturally produces.
func (l *RangeList) Add(min, max htm.Id) {
	n := len(l.Ranges)
	if n > 0 && min == l.Ranges[n-1].Max+1 {
		l.Ranges[n-1].Max = max
		return
	}
	l.Ranges = append(l.Ranges, Range{Min: min, Max: max})
}

// Len returns the number of ranges currently in the list.
func (l *RangeList) Len() int { return len(l.Ranges) }

// Coarsen reduces the effective subdivision level of the list by n levels
// and re-merges any ranges that become adjacent or overlapping as a
// result: range [min,max] becomes [min &^ mask, max | mask] with
// mask = 4^n - 1. Larger n always produces a list with no more ranges,
// eventually reaching whole-root granularity (at most 4 ranges).
func (l *RangeList) Coarsen(n int) {
	if n <= 0 || len(l.Ranges) == 0 {
		return
	}
	mask := htm.Id((int64(1) << uint(2*n)) - 1)

	out := l.Ranges[:0]
	i := 0
	for i < len(l.Ranges) {
		min := l.Ranges[i].Min &^ mask
		max := l.Ranges[i].Max | mask
		for i < len(l.Ranges)-1 {
			next := l.Ranges[i+1].Min &^ mask
			if next > max+1 {
				break
			}
			max = l.Ranges[i+1].Max | mask
			i++
		}
		out = append(out, Range{Min: min, Max: max})
		i++
	}
	l.Ranges = out
}
