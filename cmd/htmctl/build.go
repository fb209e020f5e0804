package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Caltech-IPAC/go-tinyhtm/build"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/entrystore"
)

const recordStride = 24 // x, y, z as float64

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

var (
	buildBlkSizeKiB int
	buildDelim      string
	buildMaxMemMiB  int
	buildTreeMin    int
	buildLeafThresh int
)

func init() {
	cmd := &cobra.Command{
		Use:   "build <out_path> <in_file>...",
		Short: "Sort unit-vector records by HTM id and build a compressed tree index",
		Long: `build reads delim-separated "x y z" unit-vector records from
one or more input files, writes them into an EntryStore record file at
out_path, and constructs a compressed tree index alongside it
(out_path.htm) unless the record count doesn't clear --tree-min.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args)
		},
	}
	cmd.Flags().IntVar(&buildBlkSizeKiB, "blk-size", 1024, "ExtSort block size in KiB")
	cmd.Flags().StringVar(&buildDelim, "delim", "|", "input field delimiter")
	cmd.Flags().IntVar(&buildMaxMemMiB, "max-mem", 512, "ExtSort memory budget in MiB")
	cmd.Flags().IntVar(&buildTreeMin, "tree-min", 1024, "skip tree construction at or below this many points")
	cmd.Flags().IntVar(&buildLeafThresh, "leaf-thresh", 64, "minimum points for an internal tree node")
	rootCmd.AddCommand(cmd)
}

func runBuild(args []string) error {
	outPath := args[0]
	inFiles := args[1:]

	w, err := entrystore.NewWriter(outPath, recordStride)
	if err != nil {
		return err
	}
	for _, path := range inFiles {
		if err := appendRecords(w, path, buildDelim); err != nil {
			_ = w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	opts := build.DefaultOptions()
	opts.LeafThresh = uint64(buildLeafThresh)
	opts.MinPoints = uint64(buildTreeMin)
	opts.Sort.SortBlockBytes = buildBlkSizeKiB << 10
	opts.Sort.MemBytes = buildMaxMemMiB << 20

	result, err := build.Build(outPath, recordLayout(), opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"stat":  "OK",
			"count": result.NumPoints,
			"tree":  result.TreePath != "",
		})
	}
	fmt.Printf("wrote %d records to %s\n", result.NumPoints, result.DataPath)
	if result.TreePath != "" {
		fmt.Printf("built tree index at %s\n", result.TreePath)
	} else {
		fmt.Println("skipped tree index: below --tree-min")
	}
	return nil
}

// appendRecords tokenizes each non-blank line of path on delim into
// three floats and appends them as one record.
func appendRecords(w *entrystore.Writer, path, delim string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, recordStride)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, delim)
		if len(fields) != 3 {
			return fmt.Errorf("%s:%d: expected 3 fields, got %d", path, lineNo, len(fields))
		}
		var xyz [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return fmt.Errorf("%s:%d: field %d is not a number", path, lineNo, i)
			}
			xyz[i] = v
		}
		binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(xyz[0]))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(xyz[1]))
		binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(xyz[2]))
		if err := w.Append(buf); err != nil {
			return err
		}
	}
	return scanner.Err()
}
