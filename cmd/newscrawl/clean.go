package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pevans/newscrawl/tabular"
)

// defaultRemoveColumns are the personally-identifying and redundant
// columns stripped from comment files before sharing them.
var defaultRemoveColumns = "user_name,dislikes,creation_timestamp,time_str"

func runClean(args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	var input string
	fs.StringVar(&input, "input", "", "Input CSV file (required)")
	fs.StringVar(&input, "i", "", "Shorthand for --input")
	var output string
	fs.StringVar(&output, "output", "", "Output file (default: adds _cleaned suffix)")
	fs.StringVar(&output, "o", "", "Shorthand for --output")
	var columns string
	fs.StringVar(&columns, "columns", defaultRemoveColumns, "Comma-separated columns to remove")
	fs.StringVar(&columns, "c", defaultRemoveColumns, "Shorthand for --columns")
	var backup bool
	fs.BoolVar(&backup, "backup", false, "Keep a .bak copy before overwriting the input")
	fs.BoolVar(&backup, "b", false, "Shorthand for --backup")
	fs.Parse(args)

	if input == "" {
		fatalf("--input is required")
	}
	if _, err := os.Stat(input); err != nil {
		fatalf("input file %s not found", input)
	}

	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + "_cleaned" + ext
	}

	if backup && output == input {
		if err := copyFile(input, input+".bak"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create backup: %v\n", err)
		} else {
			fmt.Printf("Created backup: %s.bak\n", input)
		}
	}

	var remove []string
	for _, c := range strings.Split(columns, ",") {
		if c = strings.TrimSpace(c); c != "" {
			remove = append(remove, c)
		}
	}

	kept, n, err := tabular.RemoveColumns(input, output, remove)
	if err != nil {
		fatalf("failed to clean %s: %v", input, err)
	}

	fmt.Printf("Processed %d rows from %s into %s\n", n, input, output)
	fmt.Printf("Remaining columns: %s\n", strings.Join(kept, ", "))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
