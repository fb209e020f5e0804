package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/coverage"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/entrystore"
	"github.com/Caltech-IPAC/go-tinyhtm/query"
)

var (
	countEstimate bool
	countPrint    bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "count <file> {circle|ellipse|hull|test} <params...>",
		Short: "Count records matching a region, using a tree index if one is present",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(args)
		},
	}
	cmd.Flags().BoolVar(&countEstimate, "estimate", false, "print a [min,max] bound instead of the exact count")
	cmd.Flags().BoolVar(&countPrint, "print", false, "also print each matching record's index and vector")
	rootCmd.AddCommand(cmd)
}

// allShape matches every record; it backs the "test" kind used to smoke
// test a build without constructing a real region.
type allShape struct{}

func (allShape) Contains(region.V3) bool        { return true }
func (allShape) Classify(htm.Tri) coverage.Code { return coverage.Inside }

func runCount(args []string) error {
	path := args[0]
	kind := args[1]
	params := args[2:]

	var shape coverage.Shape
	if kind == "test" {
		shape = allShape{}
	} else {
		s, err := parseShape(kind, params)
		if err != nil {
			return emitCountError(err)
		}
		shape = s
	}

	store, err := entrystore.Open(path, recordLayout())
	if err != nil {
		return emitCountError(fmt.Errorf("open %s: %w", path, err))
	}
	defer store.Close()

	q, err := query.Open(shape, store, path+".htm")
	if err != nil {
		return emitCountError(err)
	}
	defer q.Close()

	if countPrint {
		if _, err := q.Enumerate(func(idx uint64) bool {
			v, _ := store.Vector(int(idx))
			fmt.Printf("%d\t%g\t%g\t%g\n", idx, v.X, v.Y, v.Z)
			return true
		}); err != nil {
			return emitCountError(err)
		}
	}

	if countEstimate {
		min, max, err := q.Range()
		if err != nil {
			return emitCountError(err)
		}
		if jsonOut {
			return printJSON(map[string]any{"stat": "OK", "min": min, "max": max})
		}
		fmt.Printf("min=%d max=%d\n", min, max)
		return nil
	}

	n, err := q.Count()
	if err != nil {
		return emitCountError(err)
	}
	if jsonOut {
		return printJSON(map[string]any{"stat": "OK", "count": n})
	}
	fmt.Println(n)
	return nil
}

func emitCountError(err error) error {
	if jsonOut {
		_ = printJSON(map[string]any{"stat": "ERROR", "msg": err.Error()})
		return nil
	}
	return err
}
