package build

import "github.com/Caltech-IPAC/go-tinyhtm/internal/extsort"

// Options carries the construction parameters spec.md's build command
// exposes as flags.
type Options struct {
	// LeafThresh is the minimum point count a subtree must hold to stay
	// internal rather than collapse into a leaf. Defaults to 64, as in
	// the original tree_gen usage text.
	LeafThresh uint64
	// MinPoints is the point-count floor below which Build skips tree
	// construction entirely: a record file with MinPoints or fewer
	// points is left to scanfallback, since a tree would cost more to
	// build and traverse than a linear scan over so few records.
	MinPoints uint64
	// Sort tunes the two ExtSort passes (record file, then DiskNode
	// stream). Both reuse the same Options value.
	Sort extsort.Options
}

// DefaultOptions matches the original construction pipeline's defaults.
func DefaultOptions() Options {
	return Options{
		LeafThresh: 64,
		MinPoints:  1024,
		Sort:       extsort.DefaultOptions(),
	}
}
