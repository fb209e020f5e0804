package treebuild

import (
	"bufio"
	"os"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
)

// diskNodeWriter appends DiskNode records sequentially to a scratch
// file, in the unsorted order layoutNode happens to finish them in.
// ExtSort re-sorts this file by NodeID before TreeCompress reads it.
type diskNodeWriter struct {
	f  *os.File
	bw *bufio.Writer
}

func newDiskNodeWriter(path string) (*diskNodeWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, "treebuild: create node scratch", err)
	}
	return &diskNodeWriter{f: f, bw: bufio.NewWriterSize(f, 1<<20)}, nil
}

func (w *diskNodeWriter) append(n DiskNode) error {
	if _, err := w.bw.Write(n.Encode()); err != nil {
		return errs.Wrap(errs.KindIO, "treebuild: write node", err)
	}
	return nil
}

func (w *diskNodeWriter) close() error {
	if err := w.bw.Flush(); err != nil {
		_ = w.f.Close()
		return errs.Wrap(errs.KindIO, "treebuild: flush node scratch", err)
	}
	if err := w.f.Close(); err != nil {
		return errs.Wrap(errs.KindIO, "treebuild: close node scratch", err)
	}
	return nil
}

// Builder consumes runs of identical level-MaxDepth HTM ids (as produced
// by a single sequential scan of an id-sorted point file) and builds the
// HTM tree over them, emitting DiskNode records as soon as each node's
// subtree is fully laid out.
//
// AddRun must be called with strictly ascending htmid values, grouping
// together every point that shares one level-MaxDepth id into a single
// call (count, index of the first such point). Call Finish once after
// the last run.
type Builder struct {
	ctx     ctx
	super   SuperRoot
	out     *diskNodeWriter
	curRoot int
}

// New creates a Builder that will write its unsorted DiskNode stream to
// scratchPath.
func New(scratchPath string, leafthresh uint64) (*Builder, error) {
	out, err := newDiskNodeWriter(scratchPath)
	if err != nil {
		return nil, err
	}
	b := &Builder{out: out, curRoot: -1}
	b.ctx.leafthresh = leafthresh
	b.ctx.sink = out.append
	return b, nil
}

// AddRun folds one run of count points sharing level-MaxDepth id htmid,
// whose first point is at index, into the tree.
func (b *Builder) AddRun(htmid int64, count, index uint64) error {
	root := int(htmid>>uint(2*MaxDepth)) - 8
	if root < 0 || root > 7 {
		return errs.New(errs.KindBadID, "treebuild: malformed level-20 HTM id")
	}
	if b.curRoot != -1 && b.curRoot != root {
		if err := b.finishCurrentRoot(); err != nil {
			return err
		}
	}
	if b.super.child[root] == nil {
		b.super.child[root] = newMemNode(int64(root)+8, index)
	}
	b.curRoot = root
	addNode(b.super.child[root], &b.ctx, htmid, count, index)
	return b.ctx.err
}

func (b *Builder) finishCurrentRoot() error {
	node := b.super.child[b.curRoot]
	emitNode(node, &b.ctx)
	layoutNode(node, &b.ctx)
	return b.ctx.err
}

// Finish lays out the 8 HTM roots (treating them as one "super root"
// family for Clark-Munro) and closes the node scratch file. It returns
// the resulting SuperRoot (needed by TreeCompress to locate each root's
// subtree and to write the tree file's header) and the total node count.
func (b *Builder) Finish() (*SuperRoot, uint64, error) {
	if b.curRoot != -1 {
		if err := b.finishCurrentRoot(); err != nil {
			return nil, 0, err
		}
	}
	finishRoot(&b.super, &b.ctx)
	if b.ctx.err != nil {
		return nil, 0, b.ctx.err
	}
	if err := b.out.close(); err != nil {
		return nil, 0, err
	}
	return &b.super, b.ctx.nnodes, nil
}
