package tabular

// RemoveColumns rewrites a CSV file without the named columns. Columns
// already absent are ignored, so running it on an already-cleaned file
// succeeds and leaves the column set unchanged. Returns the surviving
// header and the number of data rows processed.
func RemoveColumns(inputPath, outputPath string, remove []string) ([]string, int, error) {
	columns, rows, err := ReadFile(inputPath)
	if err != nil {
		return nil, 0, err
	}

	drop := make(map[string]bool, len(remove))
	for _, c := range remove {
		drop[c] = true
	}

	var kept []string
	for _, c := range columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}

	// Rows are maps, so writing with the reduced header strips the
	// removed columns without touching the rows themselves. A header-only
	// input stays a header-only output rather than an error.
	if len(rows) == 0 {
		if err := writeHeaderOnly(outputPath, kept); err != nil {
			return nil, 0, err
		}
		return kept, 0, nil
	}
	if err := WriteFile(outputPath, kept, rows); err != nil {
		return nil, 0, err
	}
	return kept, len(rows), nil
}
