package build

import (
	"encoding/binary"
	"math"

	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/entrystore"
)

// vectorAt decodes the unit vector stored in rec's first three layout
// fields. It duplicates entrystore's own field decode rather than
// exporting it, since ExtSort's Comparator works over raw bytes that
// haven't been mapped through a Store yet.
func vectorAt(rec []byte, layout entrystore.Layout) region.V3 {
	return region.V3{
		X: readField(rec, layout.Fields[0]),
		Y: readField(rec, layout.Fields[1]),
		Z: readField(rec, layout.Fields[2]),
	}
}

func readField(rec []byte, f entrystore.Field) float64 {
	if f.Type == entrystore.Float32 {
		bits := binary.LittleEndian.Uint32(rec[f.Offset:])
		return float64(math.Float32frombits(bits))
	}
	bits := binary.LittleEndian.Uint64(rec[f.Offset:])
	return math.Float64frombits(bits)
}

// htmIDComparator orders raw records by the level-MaxDepth HTM id of
// their unit vector, the same key treebuild.Builder.AddRun groups runs
// by. It recomputes the id on every comparison rather than caching it
// alongside the record, mirroring the original pipeline's record
// comparator.
func htmIDComparator(layout entrystore.Layout, level int) func(a, b []byte) int {
	return func(a, b []byte) int {
		ida, errA := htm.Of(vectorAt(a, layout), level)
		idb, errB := htm.Of(vectorAt(b, layout), level)
		// A degenerate vector sorts last; Build surfaces the error once
		// it re-reads the offending record during the run-folding scan.
		switch {
		case errA != nil && errB != nil:
			return 0
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		case ida < idb:
			return -1
		case ida > idb:
			return 1
		default:
			return 0
		}
	}
}
