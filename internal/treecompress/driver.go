package treecompress

import (
	"bufio"
	"os"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/mmio"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treebuild"
)

const ioBlockBytes = 1 << 16

// Compress reads the ExtSort-ordered DiskNode stream at nodePath (nnodes
// fixed-width records, children strictly before parents) and writes a
// reversed, varint-compressed tree stream to scratchPath. roots holds
// the 8 HTM roots' NodeIDs and count the tree's total point count, both
// as returned by treebuild.Builder.Finish. The returned length is the
// size in bytes of the (still reversed) scratch stream; Finish below
// turns it into the final forward-readable tree file.
func Compress(nodePath, scratchPath string, roots [8]treebuild.NodeID, count uint64, nnodes uint64, leafthresh uint64) (uint64, error) {
	if nnodes == 0 {
		return 0, errs.New(errs.KindTree, "treecompress: no input nodes")
	}

	data, cleanup, err := mmio.Map(nodePath)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	if uint64(len(data)) != nnodes*uint64(treebuild.DiskNodeSize) {
		return 0, errs.New(errs.KindBadLen, "treecompress: node file size does not match nnodes")
	}

	out, err := os.Create(scratchPath)
	if err != nil {
		return 0, errs.Wrap(errs.KindIO, "treecompress: create scratch file", err)
	}
	w := bufio.NewWriterSize(out, ioBlockBytes)

	ot := make(offsets, 2*nnodes)
	var filesz uint64
	var advised int

	for i := uint64(0); i < nnodes; i++ {
		rec := data[i*uint64(treebuild.DiskNodeSize) : (i+1)*uint64(treebuild.DiskNodeSize)]
		node, err := treebuild.DecodeDiskNode(rec)
		if err != nil {
			_ = out.Close()
			return 0, err
		}
		if i > 0 {
			prev, _ := treebuild.DecodeDiskNode(data[(i-1)*uint64(treebuild.DiskNodeSize) : i*uint64(treebuild.DiskNodeSize)])
			if !prev.ID.Less(node.ID) {
				_ = out.Close()
				return 0, errs.New(errs.KindTree, "treecompress: node file not sorted")
			}
		}
		if int(i)*treebuild.DiskNodeSize >= advised+ioBlockBytes {
			lo := advised
			hi := lo + ioBlockBytes
			if hi > len(data) {
				hi = len(data)
			}
			_ = mmio.DontNeed(data[lo:hi])
			advised += ioBlockBytes
		}
		filesz, err = compressNode(ot, w, node, filesz, leafthresh)
		if err != nil {
			_ = out.Close()
			return 0, err
		}
	}

	filesz, err = writeTreeHeader(ot, w, roots, count, filesz, leafthresh)
	if err != nil {
		_ = out.Close()
		return 0, err
	}
	if err := w.Flush(); err != nil {
		_ = out.Close()
		return 0, errs.Wrap(errs.KindIO, "treecompress: flush scratch file", err)
	}
	if err := out.Close(); err != nil {
		return 0, errs.Wrap(errs.KindIO, "treecompress: close scratch file", err)
	}
	return filesz, nil
}

// Finish byte-reverses the scratch stream Compress produced into
// treePath, the final forward-readable tree file, and removes the
// scratch file.
func Finish(scratchPath, treePath string, filesz uint64) error {
	if filesz == 0 {
		return errs.New(errs.KindBadLen, "treecompress: cannot reverse an empty stream")
	}

	data, cleanup, err := mmio.Map(scratchPath)
	if err != nil {
		return err
	}
	defer cleanup()
	if uint64(len(data)) != filesz {
		return errs.New(errs.KindBadLen, "treecompress: scratch stream size mismatch")
	}

	out, err := os.Create(treePath)
	if err != nil {
		return errs.Wrap(errs.KindIO, "treecompress: create tree file", err)
	}
	w := bufio.NewWriterSize(out, ioBlockBytes)

	for i := int64(filesz) - 1; i >= 0; i-- {
		if err := w.WriteByte(data[i]); err != nil {
			_ = out.Close()
			return errs.Wrap(errs.KindIO, "treecompress: write reversed byte", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = out.Close()
		return errs.Wrap(errs.KindIO, "treecompress: flush tree file", err)
	}
	if err := out.Close(); err != nil {
		return errs.Wrap(errs.KindIO, "treecompress: close tree file", err)
	}
	if err := removeIfExists(scratchPath); err != nil {
		return errs.Wrap(errs.KindIO, "treecompress: remove scratch file", err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
