package htm

import (
	"testing"

	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/stretchr/testify/require"
)

func TestSortIdsRejectsBadLevel(t *testing.T) {
	_, _, err := SortIds([]region.V3{{X: 1}}, MaxLevel+1)
	require.Error(t, err)
}

func TestSortIdsMatchesOf(t *testing.T) {
	pts := []region.V3{
		{X: 1, Y: 0.1, Z: 0.05},
		{X: -1, Y: 0.2, Z: 0.1},
		{X: 0.1, Y: 1, Z: -0.2},
		{X: -0.2, Y: -1, Z: 0.3},
		{X: 0.3, Y: 0.2, Z: 1},
		{X: -0.1, Y: -0.2, Z: -1},
		{X: 0.9, Y: 0.05, Z: -0.3},
	}
	const level = 6

	ids, sorted, err := SortIds(pts, level)
	require.NoError(t, err)
	require.Len(t, ids, len(pts))
	require.Len(t, sorted, len(pts))

	want := map[region.V3]Id{}
	for _, v := range pts {
		id, err := Of(v, level)
		require.NoError(t, err)
		u, _ := v.Normalized()
		want[u] = id
	}

	seen := map[region.V3]bool{}
	for i, v := range sorted {
		u, _ := v.Normalized()
		require.Equal(t, want[u], ids[i])
		seen[u] = true
	}
	require.Len(t, seen, len(want))
}

func TestSortIdsGroupsByIdContiguously(t *testing.T) {
	pts := []region.V3{
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 0.001, Z: 0},
		{X: -1, Y: 0, Z: 0.001},
		{X: 1, Y: 0.0005, Z: 0},
	}
	ids, _, err := SortIds(pts, 4)
	require.NoError(t, err)

	firstPos := map[Id]int{}
	for i, id := range ids {
		if j, ok := firstPos[id]; ok {
			// every later occurrence of the same id must be adjacent to
			// the run started at firstPos[id]
			require.Equal(t, ids[i-1], id, "id %d at %d not contiguous with run starting at %d", id, i, j)
		} else {
			firstPos[id] = i
		}
	}
}
