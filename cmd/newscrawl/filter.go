package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pevans/newscrawl/config"
	"github.com/pevans/newscrawl/tabular"
)

// defaultFilterKeywords narrow an article file to health-related
// coverage when no --keyword is given.
var defaultFilterKeywords = []string{
	"thuốc", "dược phẩm", "thuốc chữa bệnh", "thực phẩm chức năng", "y tế", "mỹ phẩm",
}

func runFilter(args []string, cfg *config.Config) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	var input string
	fs.StringVar(&input, "input", "", "Input CSV file (required)")
	fs.StringVar(&input, "i", "", "Shorthand for --input")
	var output string
	fs.StringVar(&output, "output", "", "Output file (default: adds _filtered suffix)")
	fs.StringVar(&output, "o", "", "Shorthand for --output")
	var keywords stringList
	fs.Var(&keywords, "keyword", "Keyword to match in the headline (repeatable)")
	fs.Var(&keywords, "k", "Shorthand for --keyword")
	fs.Parse(args)

	if input == "" {
		fatalf("--input is required")
	}
	if len(keywords) == 0 {
		keywords = defaultFilterKeywords
	}
	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + "_filtered" + ext
	}

	columns, rows, err := tabular.ReadFile(input)
	if err != nil {
		fatalf("failed to read input file: %v", err)
	}

	// Article files name the title column differently per site.
	titleColumn := ""
	for _, candidate := range []string{"headline", "title"} {
		if tabular.HasColumn(columns, candidate) {
			titleColumn = candidate
			break
		}
	}
	if titleColumn == "" {
		fatalf("input file %s must contain a 'headline' or 'title' column", input)
	}

	var kept []tabular.Row
	for _, row := range rows {
		headline := strings.ToLower(row[titleColumn])
		for _, kw := range keywords {
			if strings.Contains(headline, strings.ToLower(kw)) {
				kept = append(kept, row)
				break
			}
		}
	}

	fmt.Printf("Kept %d of %d rows\n", len(kept), len(rows))
	writeOutput(output, columns, kept)
}
