// Package tabular reads and writes the delimited files every crawl
// produces and consumes. Rows are column-name maps so callers can fix
// the column order per file without the package knowing any schema.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
)

// ErrNoRows is returned when a write is asked to produce a file with no
// data rows. An empty crawl result is a run-level condition the operator
// should see, not a silently created header-only file.
var ErrNoRows = errors.New("no rows to write")

// Row maps column names to cell values. Columns absent from a row are
// written as empty cells.
type Row map[string]string

// WriteFile writes rows to path as CSV with a single header row in the
// given column order. Content is written as-is, so UTF-8 text survives
// untouched; encoding/csv handles quoting of embedded delimiters and
// newlines.
func WriteFile(path string, columns []string, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func writeHeaderOnly(path string, columns []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// ReadFile reads a CSV file with a header row, returning the header and
// one Row per data record.
func ReadFile(path string) (columns []string, rows []Row, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: missing header row", path)
	}

	columns = records[0]
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

// HasColumn reports whether the header contains the named column.
func HasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
