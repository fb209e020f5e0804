package entrystore

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLayout() Layout {
	return Layout{
		Stride: 32,
		Fields: []Field{
			{Name: "x", Type: Float64, Offset: 0},
			{Name: "y", Type: Float64, Offset: 8},
			{Name: "z", Type: Float64, Offset: 16},
			{Name: "mag", Type: Float64, Offset: 24},
		},
	}
}

func encodeRecord(x, y, z, mag float64) []byte {
	rec := make([]byte, 32)
	binary.LittleEndian.PutUint64(rec[0:], math.Float64bits(x))
	binary.LittleEndian.PutUint64(rec[8:], math.Float64bits(y))
	binary.LittleEndian.PutUint64(rec[16:], math.Float64bits(z))
	binary.LittleEndian.PutUint64(rec[24:], math.Float64bits(mag))
	return rec
}

func TestWriterThenOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	w, err := NewWriter(path, 32)
	require.NoError(t, err)
	require.NoError(t, w.Append(encodeRecord(1, 0, 0, 5)))
	require.NoError(t, w.Append(encodeRecord(0, 1, 0, 6)))
	require.Equal(t, 2, w.Len())
	require.NoError(t, w.Close())

	s, err := Open(path, testLayout())
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, 2, s.Len())
	require.Equal(t, 32, s.Stride())

	v0, err := s.Vector(0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v0.X)

	v1, err := s.Vector(1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v1.Y)

	rec, err := s.Record(1)
	require.NoError(t, err)
	require.Len(t, rec, 32)
}

func TestOpenRejectsMismatchedStride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	w, err := NewWriter(path, 32)
	require.NoError(t, err)
	require.NoError(t, w.Append(encodeRecord(1, 0, 0, 1)))
	require.NoError(t, w.Close())

	bad := testLayout()
	bad.Stride = 17
	_, err = Open(path, bad)
	require.Error(t, err)
}

func TestAppendRejectsWrongLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	w, err := NewWriter(path, 32)
	require.NoError(t, err)
	defer w.Close()

	err = w.Append(make([]byte, 16))
	require.Error(t, err)
}

func TestRecordIndexOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	w, err := NewWriter(path, 32)
	require.NoError(t, err)
	require.NoError(t, w.Append(encodeRecord(1, 0, 0, 1)))
	require.NoError(t, w.Close())

	s, err := Open(path, testLayout())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Record(5)
	require.Error(t, err)
	_, err = s.Vector(-1)
	require.Error(t, err)
}
