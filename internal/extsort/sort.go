package extsort

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/mmio"
)

// Options tunes run size, I/O granularity, and the memory budget that
// bounds merge fanout.
type Options struct {
	// SortBlockBytes is both the block writer's buffer capacity and,
	// equivalently, the size of one formed run (sortblk).
	SortBlockBytes int
	// IOBlockBytes is the madvise window size used while streaming a
	// run during merge (ioblk).
	IOBlockBytes int
	// MemBytes bounds the merge fanout: k = (MemBytes - 2*IOBlockBytes) / (2*IOBlockBytes).
	MemBytes int
}

// DefaultOptions matches the construction pipeline's defaults.
func DefaultOptions() Options {
	return Options{
		SortBlockBytes: 1 << 20,
		IOBlockBytes:   64 << 10,
		MemBytes:       512 << 20,
	}
}

func (o Options) fanout() int {
	k := (o.MemBytes - 2*o.IOBlockBytes) / (2 * o.IOBlockBytes)
	if k < 2 {
		k = 2
	}
	return k
}

// Sort sorts the fixed-size records in the file at path by cmp, in
// bounded memory, leaving the sorted result at path.
func Sort(path string, recSize int, cmp Comparator, opts Options) error {
	if recSize <= 0 {
		return errs.New(errs.KindBadLen, "extsort: non-positive record size")
	}
	info, err := os.Stat(path)
	if err != nil {
		return errs.Wrap(errs.KindIO, "extsort: stat", err)
	}
	if info.Size()%int64(recSize) != 0 {
		return errs.New(errs.KindBadLen, "extsort: file size is not a multiple of record size")
	}

	pass := 0
	curPath, runs, err := formRuns(path, scratchPath(path, pass), recSize, cmp, opts)
	if err != nil {
		return err
	}

	for len(runs) > 1 {
		pass++
		nextPath := scratchPath(path, pass)
		nextRuns, err := mergePass(curPath, nextPath, runs, recSize, cmp, opts)
		if err != nil {
			_ = os.Remove(curPath)
			return err
		}
		_ = os.Remove(curPath)
		curPath = nextPath
		runs = nextRuns
	}

	if curPath == path {
		return nil
	}
	if err := os.Rename(curPath, path); err != nil {
		return errs.Wrap(errs.KindIO, "extsort: rename final run", err)
	}
	return nil
}

func scratchPath(base string, pass int) string {
	return fmt.Sprintf("%s.sort%d", base, pass)
}

// formRuns streams srcPath sequentially through a blockWriter, producing
// sorted runs in a new scratch file at dstPath.
func formRuns(srcPath, dstPath string, recSize int, cmp Comparator, opts Options) (string, []runBounds, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", nil, errs.Wrap(errs.KindIO, "extsort: open input", err)
	}
	defer src.Close()

	out, err := createRunFile(dstPath)
	if err != nil {
		return "", nil, err
	}
	bw := newBlockWriter(formRunSink{rf: out}, recSize, opts.SortBlockBytes, cmp, false)

	r := bufio.NewReaderSize(src, 1<<20)
	rec := make([]byte, recSize)
	for {
		if _, err := io.ReadFull(r, rec); err != nil {
			if err == io.EOF {
				break
			}
			_ = bw.Close()
			return "", nil, errs.Wrap(errs.KindIO, "extsort: read record", err)
		}
		if err := bw.Append(rec); err != nil {
			return "", nil, err
		}
	}
	if err := bw.Close(); err != nil {
		return "", nil, err
	}
	runs, err := out.close()
	if err != nil {
		return "", nil, err
	}
	return dstPath, runs, nil
}

// mergePass k-way merges runs from srcPath in groups of up to the
// configured fanout, writing the resulting (fewer, larger) runs to a
// fresh scratch file at dstPath.
func mergePass(srcPath, dstPath string, runs []runBounds, recSize int, cmp Comparator, opts Options) ([]runBounds, error) {
	data, cleanup, err := mmio.Map(srcPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, err := createRunFile(dstPath)
	if err != nil {
		return nil, err
	}

	k := opts.fanout()
	for i := 0; i < len(runs); i += k {
		group := runs[i:min(i+k, len(runs))]
		sink := &groupRunSink{rf: out}
		bw := newBlockWriter(sink, recSize, opts.SortBlockBytes, cmp, true)

		segs := make([]*segment, len(group))
		for j, rb := range group {
			segs[j] = newSegment(data[rb.Offset:rb.Offset+rb.Length], recSize, opts.IOBlockBytes)
		}
		if err := mergeSegments(segs, cmp, bw); err != nil {
			_ = bw.Close()
			return nil, err
		}
		if err := bw.Close(); err != nil {
			return nil, err
		}
		sink.finish()
	}

	return out.close()
}
