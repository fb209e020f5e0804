package treesearch_test

import (
	"encoding/binary"
	"math"
	"math/rand"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/coverage"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/entrystore"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/extsort"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treebuild"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treecompress"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treesearch"
)

const recordStride = 24

func randomUnitVectors(n int, seed int64) []region.V3 {
	r := rand.New(rand.NewSource(seed))
	out := make([]region.V3, n)
	for i := range out {
		v := region.V3{X: r.NormFloat64(), Y: r.NormFloat64(), Z: r.NormFloat64()}
		u, ok := v.Normalized()
		if !ok {
			u = region.V3{X: 1, Y: 0, Z: 0}
		}
		out[i] = u
	}
	return out
}

func recordLayout() entrystore.Layout {
	return entrystore.Layout{
		Stride: recordStride,
		Fields: []entrystore.Field{
			{Name: "x", Type: entrystore.Float64, Offset: 0},
			{Name: "y", Type: entrystore.Float64, Offset: 8},
			{Name: "z", Type: entrystore.Float64, Offset: 16},
		},
	}
}

func encodePoint(v region.V3) []byte {
	buf := make([]byte, recordStride)
	binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(v.X))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(v.Y))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(v.Z))
	return buf
}

type builtTree struct {
	tree   *treesearch.Tree
	store  *entrystore.Store
	points []region.V3 // in store (htm-id-sorted) order
}

func (b *builtTree) close() {
	_ = b.tree.Close()
	_ = b.store.Close()
}

func buildTestTree(t *testing.T, points []region.V3, leafthresh uint64) *builtTree {
	t.Helper()
	dir := t.TempDir()

	type idPoint struct {
		id int64
		pt region.V3
	}
	items := make([]idPoint, len(points))
	for i, p := range points {
		id, err := htm.Of(p, treebuild.MaxDepth)
		require.NoError(t, err)
		items[i] = idPoint{id: int64(id), pt: p}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].id < items[j].id })

	dataPath := filepath.Join(dir, "points.dat")
	w, err := entrystore.NewWriter(dataPath, recordStride)
	require.NoError(t, err)
	sorted := make([]region.V3, len(items))
	for i, it := range items {
		require.NoError(t, w.Append(encodePoint(it.pt)))
		sorted[i] = it.pt
	}
	require.NoError(t, w.Close())

	nodePath := filepath.Join(dir, "nodes.raw")
	b, err := treebuild.New(nodePath, leafthresh)
	require.NoError(t, err)

	for i := 0; i < len(items); {
		j := i + 1
		for j < len(items) && items[j].id == items[i].id {
			j++
		}
		require.NoError(t, b.AddRun(items[i].id, uint64(j-i), uint64(i)))
		i = j
	}
	super, nnodes, err := b.Finish()
	require.NoError(t, err)

	require.NoError(t, extsort.Sort(nodePath, treebuild.DiskNodeSize, treebuild.CompareDiskNodeRecords, extsort.DefaultOptions()))

	compressedScratch := filepath.Join(dir, "compressed.scr")
	filesz, err := treecompress.Compress(nodePath, compressedScratch, super.ChildID, super.Count, nnodes, leafthresh)
	require.NoError(t, err)

	treePath := filepath.Join(dir, "tree.htm")
	require.NoError(t, treecompress.Finish(compressedScratch, treePath, filesz))

	store, err := entrystore.Open(dataPath, recordLayout())
	require.NoError(t, err)

	tree, err := treesearch.Open(treePath, store)
	require.NoError(t, err)

	return &builtTree{tree: tree, store: store, points: sorted}
}

func bruteForceCount(points []region.V3, shape coverage.Shape) uint64 {
	var n uint64
	for _, p := range points {
		if shape.Contains(p) {
			n++
		}
	}
	return n
}

func TestTreeHeaderMatchesBuild(t *testing.T) {
	points := randomUnitVectors(150, 1)
	bt := buildTestTree(t, points, 4)
	defer bt.close()

	require.EqualValues(t, len(points), bt.tree.Count())
	require.EqualValues(t, 4, bt.tree.LeafThreshold())
}

func TestCountMatchesBruteForceCircle(t *testing.T) {
	points := randomUnitVectors(300, 2)
	bt := buildTestTree(t, points, 8)
	defer bt.close()

	shape := coverage.CircleShape{C: region.NewCircle(points[0], 30)}
	want := bruteForceCount(points, shape)

	got, err := bt.tree.Count(shape)
	require.NoError(t, err)
	require.EqualValues(t, want, got)
}

func TestCountWholeSphereMatchesAllPoints(t *testing.T) {
	points := randomUnitVectors(100, 3)
	bt := buildTestTree(t, points, 4)
	defer bt.close()

	shape := coverage.CircleShape{C: region.NewCircle(points[0], 180)}
	got, err := bt.tree.Count(shape)
	require.NoError(t, err)
	require.EqualValues(t, len(points), got)
}

func TestRangeBoundsExactCount(t *testing.T) {
	points := randomUnitVectors(250, 4)
	bt := buildTestTree(t, points, 6)
	defer bt.close()

	shape := coverage.CircleShape{C: region.NewCircle(points[0], 20)}
	want := bruteForceCount(points, shape)

	min, max, err := bt.tree.Range(shape)
	require.NoError(t, err)
	require.LessOrEqual(t, min, want)
	require.GreaterOrEqual(t, max, want)
}

func TestEnumerateVisitsExactlyMatchingPoints(t *testing.T) {
	points := randomUnitVectors(200, 5)
	bt := buildTestTree(t, points, 5)
	defer bt.close()

	shape := coverage.CircleShape{C: region.NewCircle(points[0], 25)}

	seen := map[uint64]bool{}
	total, err := bt.tree.Enumerate(shape, func(idx uint64) bool {
		seen[idx] = true
		return true
	})
	require.NoError(t, err)
	require.EqualValues(t, total, len(seen))

	want := bruteForceCount(points, shape)
	require.EqualValues(t, want, total)

	for idx := range seen {
		require.True(t, shape.Contains(bt.points[idx]))
	}
}

func TestEnumerateCallbackFalseExcludesFromTotal(t *testing.T) {
	points := randomUnitVectors(120, 6)
	bt := buildTestTree(t, points, 4)
	defer bt.close()

	shape := coverage.CircleShape{C: region.NewCircle(points[0], 60)}
	total, err := bt.tree.Enumerate(shape, func(uint64) bool { return false })
	require.NoError(t, err)
	require.Zero(t, total)
}
