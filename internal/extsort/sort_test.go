package extsort

import (
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

const recSize = 8

func keyCmp(a, b []byte) int {
	av := binary.BigEndian.Uint64(a)
	bv := binary.BigEndian.Uint64(b)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func writeRecords(t *testing.T, path string, values []uint64) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	rec := make([]byte, recSize)
	for _, v := range values {
		binary.BigEndian.PutUint64(rec, v)
		_, err := f.Write(rec)
		require.NoError(t, err)
	}
}

func readRecords(t *testing.T, path string) []uint64 {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Zero(t, len(data)%recSize)
	out := make([]uint64, len(data)/recSize)
	for i := range out {
		out[i] = binary.BigEndian.Uint64(data[i*recSize : (i+1)*recSize])
	}
	return out
}

func TestSortSmallFileSingleRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	values := []uint64{5, 3, 1, 4, 2}
	writeRecords(t, path, values)

	opts := DefaultOptions()
	require.NoError(t, Sort(path, recSize, keyCmp, opts))

	got := readRecords(t, path)
	want := append([]uint64(nil), values...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	require.Equal(t, want, got)
}

func TestSortForcesMultipleRunsAndMergePasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	rng := rand.New(rand.NewSource(1))
	n := 500
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(rng.Intn(1000))
	}
	writeRecords(t, path, values)

	opts := Options{
		SortBlockBytes: 8 * recSize, // forces many tiny runs
		IOBlockBytes:   recSize * 4,
		MemBytes:       recSize * 4 * 6, // tiny fanout forces multiple merge passes
	}
	require.NoError(t, Sort(path, recSize, keyCmp, opts))

	got := readRecords(t, path)
	want := append([]uint64(nil), values...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	require.Equal(t, want, got)
}

func TestSortEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	require.NoError(t, Sort(path, recSize, keyCmp, DefaultOptions()))
	got := readRecords(t, path)
	require.Empty(t, got)
}

func TestSortRejectsMisalignedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, recSize+1), 0o644))
	err := Sort(path, recSize, keyCmp, DefaultOptions())
	require.Error(t, err)
}

func TestScratchPathAlternatesByPass(t *testing.T) {
	require.Equal(t, "/tmp/x.sort0", scratchPath("/tmp/x", 0))
	require.Equal(t, "/tmp/x.sort1", scratchPath("/tmp/x", 1))
}
