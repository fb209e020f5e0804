package treecompress_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/extsort"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treebuild"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treecompress"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/varint"
)

func samplePoints() []region.V3 {
	return []region.V3{
		{X: 1, Y: 0, Z: 0},
		{X: 0.99, Y: 0.01, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
		{X: -1, Y: 0, Z: 0},
	}
}

func TestCompressFinishRoundTrip(t *testing.T) {
	dir := t.TempDir()

	ids := make([]int64, 0, len(samplePoints()))
	for _, v := range samplePoints() {
		id, err := htm.Of(v, treebuild.MaxDepth)
		require.NoError(t, err)
		ids = append(ids, int64(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	const leafthresh = 2
	nodePath := filepath.Join(dir, "nodes.raw")
	b, err := treebuild.New(nodePath, leafthresh)
	require.NoError(t, err)
	for i, id := range ids {
		require.NoError(t, b.AddRun(id, 1, uint64(i)))
	}
	super, nnodes, err := b.Finish()
	require.NoError(t, err)
	require.Positive(t, nnodes)

	scratchPath := filepath.Join(dir, "nodes.scr")
	require.NoError(t, extsort.Sort(nodePath, treebuild.DiskNodeSize, treebuild.CompareDiskNodeRecords, extsort.DefaultOptions()))

	compressedScratch := filepath.Join(dir, "compressed.scr")
	filesz, err := treecompress.Compress(nodePath, compressedScratch, super.ChildID, super.Count, nnodes, leafthresh)
	require.NoError(t, err)
	require.Positive(t, filesz)

	treePath := filepath.Join(dir, "tree.htm")
	require.NoError(t, treecompress.Finish(compressedScratch, treePath, filesz))

	_, err = os.Stat(compressedScratch)
	require.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(treePath)
	require.NoError(t, err)
	require.Len(t, data, int(filesz))

	leaf, n, err := varint.Decode(data)
	require.NoError(t, err)
	require.EqualValues(t, leafthresh, leaf)

	count, _, err := varint.Decode(data[n:])
	require.NoError(t, err)
	require.EqualValues(t, len(ids), count)
}

func TestCompressRejectsZeroNodes(t *testing.T) {
	dir := t.TempDir()
	_, err := treecompress.Compress(filepath.Join(dir, "missing"), filepath.Join(dir, "out"), [8]treebuild.NodeID{}, 0, 0, 1)
	require.Error(t, err)
}
