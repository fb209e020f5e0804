package extsort

import (
	"container/heap"

	"github.com/Caltech-IPAC/go-tinyhtm/internal/mmio"
)

// segment streams one run's records out of a shared memory mapping,
// advising the kernel about the window currently in play so resident
// memory stays bounded to a small multiple of ioBlock regardless of run
// size.
type segment struct {
	data    []byte // this run's slice of the shared mapping
	recSize int
	ioBlock int
	pos     int // next unread byte offset within data
	advised int // end of the window already WILLNEED-advised
}

func newSegment(data []byte, recSize, ioBlock int) *segment {
	s := &segment{data: data, recSize: recSize, ioBlock: ioBlock}
	s.adviseAhead()
	return s
}

func (s *segment) adviseAhead() {
	if s.advised >= len(s.data) {
		return
	}
	end := s.advised + s.ioBlock
	if end > len(s.data) {
		end = len(s.data)
	}
	_ = mmio.WillNeed(s.data[s.advised:end])
	s.advised = end
}

func (s *segment) front() []byte {
	if s.pos >= len(s.data) {
		return nil
	}
	return s.data[s.pos : s.pos+s.recSize]
}

func (s *segment) advance() {
	releasedTo := s.pos
	s.pos += s.recSize
	if s.pos >= s.advised {
		s.adviseAhead()
	}
	// Release the ioBlock window we just fully crossed out of.
	windowStart := (releasedTo / s.ioBlock) * s.ioBlock
	windowEnd := windowStart + s.ioBlock
	if s.pos >= windowEnd && windowEnd <= len(s.data) {
		_ = mmio.DontNeed(s.data[windowStart:windowEnd])
	}
}

func (s *segment) empty() bool { return s.pos >= len(s.data) }

// segHeap is a container/heap.Interface over segments, ordered by each
// segment's front record under cmp.
type segHeap struct {
	segs []*segment
	cmp  Comparator
}

func (h *segHeap) Len() int { return len(h.segs) }
func (h *segHeap) Less(i, j int) bool {
	return h.cmp(h.segs[i].front(), h.segs[j].front()) < 0
}
func (h *segHeap) Swap(i, j int) { h.segs[i], h.segs[j] = h.segs[j], h.segs[i] }
func (h *segHeap) Push(x any)    { h.segs = append(h.segs, x.(*segment)) }
func (h *segHeap) Pop() any {
	old := h.segs
	n := len(old)
	item := old[n-1]
	h.segs = old[:n-1]
	return item
}

// mergeSegments performs a k-way merge of segs, appending each record in
// order to dst, in ascending cmp order.
func mergeSegments(segs []*segment, cmp Comparator, dst *blockWriter) error {
	h := &segHeap{cmp: cmp}
	for _, s := range segs {
		if !s.empty() {
			h.segs = append(h.segs, s)
		}
	}
	heap.Init(h)
	for h.Len() > 0 {
		s := h.segs[0]
		if err := dst.Append(s.front()); err != nil {
			return err
		}
		s.advance()
		if s.empty() {
			heap.Pop(h)
		} else {
			heap.Fix(h, 0)
		}
	}
	return nil
}
