package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var jsonOut bool

var rootCmd = &cobra.Command{
	Use:     "htmctl",
	Short:   "Build and query Hierarchical Triangular Mesh spatial indexes",
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func checkArgs(args []string, min int, usage string) error {
	if len(args) < min {
		return fmt.Errorf("expected at least %d argument(s), got %d\nUsage: %s", min, len(args), usage)
	}
	return nil
}
