package treecompress

import (
	"bufio"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treebuild"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/varint"
)

// offsets maps a node's post-order index -- already unique, since it's
// assigned by a single depth-first walk -- to its byte offset in the
// reversed stream being built. The original C implementation chains a
// hand-rolled power-of-2 hash table keyed the same way; a Go map does
// the identical job without the manual growth/rehash bookkeeping.
type offsets map[uint64]uint64

func (o offsets) add(id treebuild.NodeID, off uint64) {
	o[id.Block[treebuild.NLOD]] = off
}

// take returns and forgets id's offset. Every node must be consumed by
// exactly one parent (or by the header, for a root); a miss means a
// parent was written before its child, which should be impossible given
// the NodeID sort order.
func (o offsets) take(id treebuild.NodeID) (uint64, error) {
	key := id.Block[treebuild.NLOD]
	off, ok := o[key]
	if !ok {
		return 0, errs.ErrTreeCorrupt
	}
	delete(o, key)
	return off, nil
}

// appendReversed grows buf by the mirror-image varint encoding of v and
// returns the new slice along with the number of bytes added.
func appendReversed(buf []byte, v uint64) ([]byte, int) {
	before := len(buf)
	buf = varint.EncodeReverse(buf, v)
	return buf, len(buf) - before
}

// compressNode appends node's reversed record to w and returns the
// stream's new total length. A leaf (all children empty) stores no
// child-offset bytes at all; an internal node stores one offset per
// non-empty child, encoded as 1 plus its distance behind node so 0 can
// keep meaning "no child" (child 3 can be laid out immediately after its
// parent, which would otherwise encode as offset 0).
func compressNode(o offsets, w *bufio.Writer, node treebuild.DiskNode, filesz, leafthresh uint64) (uint64, error) {
	var buf []byte
	sz := filesz
	leaf := true

	for c := 3; c >= 0; c-- {
		child := node.Child[c]
		if child.Empty() {
			buf = append(buf, 0)
			sz++
			continue
		}
		leaf = false
		childOff, err := o.take(child)
		if err != nil {
			return 0, err
		}
		var n int
		buf, n = appendReversed(buf, sz+1-childOff)
		sz += uint64(n)
	}

	if leaf {
		buf = buf[:len(buf)-4]
		sz -= 4
	} else if node.Count < leafthresh {
		return 0, errs.New(errs.KindTree, "treecompress: internal node below leaf threshold")
	}

	var n int
	buf, n = appendReversed(buf, node.Index)
	sz += uint64(n)
	buf, n = appendReversed(buf, node.Count)
	sz += uint64(n)

	if _, err := w.Write(buf); err != nil {
		return 0, errs.Wrap(errs.KindIO, "treecompress: write node", err)
	}
	o.add(node.ID, sz)
	return sz, nil
}

// writeTreeHeader appends the super-root record -- the 8 HTM roots'
// offsets (N3..N0, S3..S0), the tree's total point count, and the leaf
// threshold it was built with -- closing out the stream. Every node
// offsets recorded during the walk must have been consumed by the time
// the header is written; a non-empty table means some node was written
// but never referenced as anyone's child.
func writeTreeHeader(o offsets, w *bufio.Writer, roots [8]treebuild.NodeID, count, filesz, leafthresh uint64) (uint64, error) {
	var buf []byte
	sz := filesz

	for r := 7; r >= 0; r-- {
		id := roots[r]
		if id.Empty() {
			buf = append(buf, 0)
			sz++
			continue
		}
		off, err := o.take(id)
		if err != nil {
			return 0, err
		}
		var n int
		buf, n = appendReversed(buf, sz+1-off)
		sz += uint64(n)
	}

	var n int
	buf, n = appendReversed(buf, count)
	sz += uint64(n)
	buf, n = appendReversed(buf, leafthresh)
	sz += uint64(n)

	if _, err := w.Write(buf); err != nil {
		return 0, errs.Wrap(errs.KindIO, "treecompress: write header", err)
	}
	if len(o) != 0 {
		return 0, errs.ErrHashNotEmpty
	}
	return sz, nil
}
