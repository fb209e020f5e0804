package treecompress

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Caltech-IPAC/go-tinyhtm/internal/treebuild"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/varint"
)

func nodeID(poidx uint64) treebuild.NodeID {
	var id treebuild.NodeID
	id.Block[treebuild.NLOD] = poidx
	return id
}

func TestCompressNodeLeafOmitsChildBytes(t *testing.T) {
	ot := make(offsets)
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	leaf := treebuild.DiskNode{ID: nodeID(1), Count: 5, Index: 2}
	sz, err := compressNode(ot, w, leaf, 0, 1)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	// leaf: no child-offset bytes, just reversed index then reversed count
	wantLen := varint.Len(leaf.Index) + varint.Len(leaf.Count)
	require.EqualValues(t, wantLen, sz)
	require.Equal(t, int(sz), buf.Len())

	off, ok := ot[1]
	require.True(t, ok)
	require.Equal(t, sz, off)
}

func TestCompressNodeInternalConsumesChildOffsets(t *testing.T) {
	ot := make(offsets)
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	child := treebuild.DiskNode{ID: nodeID(1), Count: 3, Index: 0}
	childSz, err := compressNode(ot, w, child, 0, 1)
	require.NoError(t, err)

	parent := treebuild.DiskNode{ID: nodeID(2), Count: 4, Index: 0}
	parent.Child[0] = child.ID
	parentSz, err := compressNode(ot, w, parent, childSz, 1)
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Greater(t, parentSz, childSz)

	// child's offset was consumed exactly once
	_, stillThere := ot[1]
	require.False(t, stillThere)

	_, ok := ot[2]
	require.True(t, ok)
}

func TestCompressNodeRejectsBelowThresholdInternalNode(t *testing.T) {
	ot := make(offsets)
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	child := treebuild.DiskNode{ID: nodeID(1), Count: 1}
	childSz, err := compressNode(ot, w, child, 0, 1)
	require.NoError(t, err)

	parent := treebuild.DiskNode{ID: nodeID(2), Count: 1}
	parent.Child[0] = child.ID
	_, err = compressNode(ot, w, parent, childSz, 2)
	require.Error(t, err)
}

func TestCompressNodeRejectsUnknownChild(t *testing.T) {
	ot := make(offsets)
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	parent := treebuild.DiskNode{ID: nodeID(1), Count: 1}
	parent.Child[0] = nodeID(99)
	_, err := compressNode(ot, w, parent, 0, 1)
	require.Error(t, err)
}

func TestWriteTreeHeaderRequiresEmptyTable(t *testing.T) {
	ot := make(offsets)
	ot[42] = 7
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	var roots [8]treebuild.NodeID
	_, err := writeTreeHeader(ot, w, roots, 10, 0, 1)
	require.Error(t, err)
}

func TestWriteTreeHeaderAllRootsEmpty(t *testing.T) {
	ot := make(offsets)
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	var roots [8]treebuild.NodeID
	sz, err := writeTreeHeader(ot, w, roots, 10, 0, 3)
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	// 8 empty-root marker bytes + count + leafthresh
	require.EqualValues(t, 8+varint.Len(10)+varint.Len(3), sz)
}
