package extsort

import (
	"bufio"
	"os"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
)

// runBounds locates one sorted run within a scratch file.
type runBounds struct {
	Offset int64
	Length int64
}

// runFile is an append-only scratch file that a blockWriter's flushes
// are appended to. Run boundaries are NOT implied by flush boundaries:
// callers decide, via formRunSink or groupRunSink, whether each flush is
// its own run (independently sorted buffers) or part of one larger run
// (a k-way merge's output, which is globally sorted across flushes).
type runFile struct {
	f    *os.File
	bw   *bufio.Writer
	off  int64
	runs []runBounds
}

func createRunFile(path string) (*runFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, "extsort: create scratch", err)
	}
	return &runFile{f: f, bw: bufio.NewWriterSize(f, 1<<20)}, nil
}

func (rf *runFile) appendBytes(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := rf.bw.Write(buf); err != nil {
		return errs.Wrap(errs.KindIO, "extsort: write run", err)
	}
	rf.off += int64(len(buf))
	return nil
}

func (rf *runFile) addRun(rb runBounds) { rf.runs = append(rf.runs, rb) }

func (rf *runFile) close() ([]runBounds, error) {
	if err := rf.bw.Flush(); err != nil {
		_ = rf.f.Close()
		return nil, errs.Wrap(errs.KindIO, "extsort: flush scratch", err)
	}
	if err := rf.f.Close(); err != nil {
		return nil, errs.Wrap(errs.KindIO, "extsort: close scratch", err)
	}
	return rf.runs, nil
}

// formRunSink treats every blockWriter flush as its own independent run:
// each flushed buffer was sorted on its own, with no ordering guarantee
// relative to any other buffer.
type formRunSink struct{ rf *runFile }

func (s formRunSink) writeRun(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	start := s.rf.off
	if err := s.rf.appendBytes(buf); err != nil {
		return err
	}
	s.rf.addRun(runBounds{Offset: start, Length: int64(len(buf))})
	return nil
}

// groupRunSink accumulates every flush belonging to one k-way merge
// group into a single run, recorded once finish is called. The flushes
// are globally ordered (the merge heap guarantees it), so splitting them
// into per-flush runs would needlessly shrink the next pass's fanout.
type groupRunSink struct {
	rf      *runFile
	start   int64
	length  int64
	started bool
}

func (s *groupRunSink) writeRun(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if !s.started {
		s.start = s.rf.off
		s.started = true
	}
	if err := s.rf.appendBytes(buf); err != nil {
		return err
	}
	s.length += int64(len(buf))
	return nil
}

func (s *groupRunSink) finish() {
	if s.length > 0 {
		s.rf.addRun(runBounds{Offset: s.start, Length: s.length})
	}
}
