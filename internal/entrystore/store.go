package entrystore

import (
	"encoding/binary"
	"math"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/mmio"
)

// ElementType names the wire encoding of one field within a record.
type ElementType int

const (
	Float32 ElementType = iota
	Float64
	Int32
	Int64
)

func (t ElementType) size() int {
	switch t {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	default:
		return 0
	}
}

// Field describes one named, typed slot within a record.
type Field struct {
	Name   string
	Type   ElementType
	Offset int
}

// Layout is the stride and field set shared by every record in a store.
// The first three fields must be the x, y, z unit-vector components, in
// that order, each Float32 or Float64.
type Layout struct {
	Stride int
	Fields []Field
}

// Validate checks that the layout is self-consistent and carries a
// leading x/y/z unit-vector triple.
func (l Layout) Validate() error {
	if l.Stride <= 0 {
		return errs.New(errs.KindBadLen, "entrystore: non-positive stride")
	}
	if len(l.Fields) < 3 {
		return errs.New(errs.KindBadLen, "entrystore: layout needs at least 3 fields (x, y, z)")
	}
	for i, f := range l.Fields {
		if f.Offset < 0 || f.Offset+f.Type.size() > l.Stride {
			return errs.New(errs.KindBadLen, "entrystore: field "+f.Name+" does not fit stride")
		}
		if i < 3 && f.Type != Float32 && f.Type != Float64 {
			return errs.New(errs.KindInvalid, "entrystore: unit-vector field "+f.Name+" must be float")
		}
	}
	return nil
}

// Store is a read-only view of a memory-mapped record file.
type Store struct {
	data    []byte
	cleanup func() error
	layout  Layout
	count   int
}

// Open memory-maps path read-only and validates that its size is an
// exact multiple of layout.Stride.
func Open(path string, layout Layout) (*Store, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	data, cleanup, err := mmio.Map(path)
	if err != nil {
		return nil, err
	}
	if len(data)%layout.Stride != 0 {
		_ = cleanup()
		return nil, errs.New(errs.KindBadLen, "entrystore: file size is not a multiple of stride")
	}
	return &Store{
		data:    data,
		cleanup: cleanup,
		layout:  layout,
		count:   len(data) / layout.Stride,
	}, nil
}

// Close unmaps the underlying file.
func (s *Store) Close() error {
	if s.cleanup == nil {
		return nil
	}
	return s.cleanup()
}

// Len returns the number of records.
func (s *Store) Len() int { return s.count }

// Stride returns the byte length of one record.
func (s *Store) Stride() int { return s.layout.Stride }

// Fields returns the record's field descriptors.
func (s *Store) Fields() []Field { return s.layout.Fields }

// Record returns the raw bytes of record i, a view into the mapped
// file. Callers must not retain it past Close.
func (s *Store) Record(i int) ([]byte, error) {
	if i < 0 || i >= s.count {
		return nil, errs.New(errs.KindBadLen, "entrystore: record index out of range")
	}
	off := i * s.layout.Stride
	return s.data[off : off+s.layout.Stride], nil
}

// Vector returns the unit vector (x, y, z) stored in record i's first
// three fields.
func (s *Store) Vector(i int) (region.V3, error) {
	rec, err := s.Record(i)
	if err != nil {
		return region.V3{}, err
	}
	x := readFloat(rec, s.layout.Fields[0])
	y := readFloat(rec, s.layout.Fields[1])
	z := readFloat(rec, s.layout.Fields[2])
	return region.V3{X: x, Y: y, Z: z}, nil
}

func readFloat(rec []byte, f Field) float64 {
	switch f.Type {
	case Float32:
		bits := binary.LittleEndian.Uint32(rec[f.Offset:])
		return float64(math.Float32frombits(bits))
	default:
		bits := binary.LittleEndian.Uint64(rec[f.Offset:])
		return math.Float64frombits(bits)
	}
}
