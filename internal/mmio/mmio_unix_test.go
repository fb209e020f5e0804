//go:build unix

package mmio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapReadOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bin")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, cleanup()) }()

	require.Equal(t, want, []byte(data))
}

func TestMapReadOnlyZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	require.Empty(t, data)
	require.NoError(t, cleanup())
}

func TestWillNeedAndDontNeedOnMappedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "advise.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 8192), 0o644))

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, cleanup()) }()

	require.NoError(t, WillNeed(data))
	require.NoError(t, DontNeed(data))
}
