package treesearch

import (
	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/entrystore"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/mmio"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/varint"
)

// Tree is a memory-mapped, read-only view of a compressed tree file
// together with the point store it indexes.
type Tree struct {
	data       []byte
	cleanup    func() error
	store      *entrystore.Store
	leafthresh uint64
	count      uint64
	rootPos    [8]int64 // -1 for an absent root
}

// Open maps treePath and parses its header: leaf threshold, total point
// count, and the byte offset of each of the 8 HTM roots. store is the
// point file the tree was built over; queries test leaf points by
// reading vectors from it.
func Open(treePath string, store *entrystore.Store) (*Tree, error) {
	data, cleanup, err := mmio.Map(treePath)
	if err != nil {
		return nil, err
	}
	t := &Tree{data: data, cleanup: cleanup, store: store}

	pos := 0
	leafthresh, n, err := varint.Decode(data[pos:])
	if err != nil {
		_ = cleanup()
		return nil, errs.Wrap(errs.KindTree, "treesearch: read leaf threshold", err)
	}
	pos += n
	t.leafthresh = leafthresh

	count, n, err := varint.Decode(data[pos:])
	if err != nil {
		_ = cleanup()
		return nil, errs.Wrap(errs.KindTree, "treesearch: read point count", err)
	}
	pos += n
	t.count = count

	for r := 0; r < 8; r++ {
		val, n, err := varint.Decode(data[pos:])
		if err != nil {
			_ = cleanup()
			return nil, errs.Wrap(errs.KindTree, "treesearch: read root offset", err)
		}
		pos += n
		if val == 0 {
			t.rootPos[r] = -1
		} else {
			t.rootPos[r] = int64(pos) + int64(val) - 1
		}
	}
	return t, nil
}

// Close unmaps the tree file. It does not close the point store, which
// the caller opened and owns.
func (t *Tree) Close() error {
	if t.cleanup == nil {
		return nil
	}
	return t.cleanup()
}

// LeafThreshold returns the leaf threshold the tree was built with.
func (t *Tree) LeafThreshold() uint64 { return t.leafthresh }

// Count returns the tree's total point count, as recorded at build time.
func (t *Tree) Count() uint64 { return t.count }

func rootNode(r int) htm.Node {
	return htm.RootNode(htm.Root(r))
}
