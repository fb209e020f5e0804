package entrystore

import (
	"bufio"
	"os"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
)

// Writer appends fixed-stride records to a file sequentially. It has no
// random-access or read-back API; once construction is done the file is
// reopened through Open for querying.
type Writer struct {
	f      *os.File
	bw     *bufio.Writer
	stride int
	n      int
}

// NewWriter creates (truncating if present) the record file at path.
func NewWriter(path string, stride int) (*Writer, error) {
	if stride <= 0 {
		return nil, errs.New(errs.KindBadLen, "entrystore: non-positive stride")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, "entrystore: create", err)
	}
	return &Writer{f: f, bw: bufio.NewWriterSize(f, 1<<20), stride: stride}, nil
}

// Append writes one record. len(record) must equal the writer's stride.
func (w *Writer) Append(record []byte) error {
	if len(record) != w.stride {
		return errs.New(errs.KindBadLen, "entrystore: record does not match stride")
	}
	if _, err := w.bw.Write(record); err != nil {
		return errs.Wrap(errs.KindIO, "entrystore: write", err)
	}
	w.n++
	return nil
}

// Len returns the number of records appended so far.
func (w *Writer) Len() int { return w.n }

// Close flushes buffered data and closes the file.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		_ = w.f.Close()
		return errs.Wrap(errs.KindIO, "entrystore: flush", err)
	}
	if err := w.f.Close(); err != nil {
		return errs.Wrap(errs.KindIO, "entrystore: close", err)
	}
	return nil
}
