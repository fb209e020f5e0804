package build

import (
	"os"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/entrystore"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/extsort"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treebuild"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treecompress"
)

// Result reports what Build produced.
type Result struct {
	// DataPath is the (now HTM-id-sorted) record file passed to Build.
	DataPath string
	// TreePath is the compressed tree file Build wrote alongside
	// DataPath, or "" if NumPoints didn't clear Options.MinPoints.
	TreePath  string
	NumPoints uint64
}

// treeSuffix and friends name the scratch/output files Build creates
// next to dataPath. A retry first removes any leftovers from a prior
// aborted run.
const (
	treeSuffix    = ".htm"
	rawSuffix     = ".raw"
	scratchSuffix = ".scr"
)

// Build sorts the fixed-stride records at dataPath into HTM id order
// and, if there are more than opts.MinPoints of them, constructs a
// compressed tree file at dataPath+".htm". layout's first three fields
// must be the record's unit-vector x/y/z, per entrystore.Layout's
// contract.
func Build(dataPath string, layout entrystore.Layout, opts Options) (*Result, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	treePath := dataPath + treeSuffix
	rawPath := dataPath + rawSuffix
	scratchPath := dataPath + scratchSuffix
	for _, p := range []string{treePath, rawPath, scratchPath} {
		if err := removeIfExists(p); err != nil {
			return nil, err
		}
	}

	cmp := htmIDComparator(layout, treebuild.MaxDepth)
	if err := extsort.Sort(dataPath, layout.Stride, cmp, opts.Sort); err != nil {
		return nil, err
	}

	npoints, super, nnodes, err := foldTree(dataPath, rawPath, layout, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{DataPath: dataPath, NumPoints: npoints}
	if npoints <= opts.MinPoints {
		if err := removeIfExists(rawPath); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := extsort.Sort(rawPath, treebuild.DiskNodeSize, treebuild.CompareDiskNodeRecords, opts.Sort); err != nil {
		return nil, err
	}

	filesz, err := treecompress.Compress(rawPath, scratchPath, super.ChildID, super.Count, nnodes, opts.LeafThresh)
	if err != nil {
		return nil, err
	}
	if err := treecompress.Finish(scratchPath, treePath, filesz); err != nil {
		return nil, err
	}
	if err := removeIfExists(rawPath); err != nil {
		return nil, err
	}

	result.TreePath = treePath
	return result, nil
}

// foldTree scans dataPath (already HTM-id-sorted) once, grouping
// consecutive records that share a level-MaxDepth HTM id into single
// Builder.AddRun calls, and returns the total point count together with
// the SuperRoot and node count treecompress needs next.
func foldTree(dataPath, rawPath string, layout entrystore.Layout, opts Options) (uint64, *treebuild.SuperRoot, uint64, error) {
	store, err := entrystore.Open(dataPath, layout)
	if err != nil {
		return 0, nil, 0, err
	}
	defer store.Close()

	n := store.Len()
	b, err := treebuild.New(rawPath, opts.LeafThresh)
	if err != nil {
		return 0, nil, 0, err
	}
	if n == 0 {
		super, nnodes, err := b.Finish()
		return 0, super, nnodes, err
	}

	runStart := 0
	runID, err := idAt(store, 0)
	if err != nil {
		return 0, nil, 0, err
	}
	for i := 1; i <= n; i++ {
		var id int64
		if i < n {
			id, err = idAt(store, i)
			if err != nil {
				return 0, nil, 0, err
			}
		}
		if i == n || id != runID {
			if err := b.AddRun(runID, uint64(i-runStart), uint64(runStart)); err != nil {
				return 0, nil, 0, err
			}
			runStart = i
			runID = id
		}
	}
	super, nnodes, err := b.Finish()
	if err != nil {
		return 0, nil, 0, err
	}
	return uint64(n), super, nnodes, nil
}

func idAt(store *entrystore.Store, i int) (int64, error) {
	v, err := store.Vector(i)
	if err != nil {
		return 0, err
	}
	id, err := htm.Of(v, treebuild.MaxDepth)
	if err != nil {
		return 0, err
	}
	return int64(id), nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.KindIO, "build: remove scratch file", err)
	}
	return nil
}
