package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pevans/newscrawl/crawl"
	"github.com/pevans/newscrawl/tabular"
)

// fatalf prints an error to stderr and exits non-zero. Input validation
// calls this before any network activity starts.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// stringList is a repeatable flag value, so --keyword can be given more
// than once.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", value)
	}
	return t, nil
}

// secondsToDuration converts a --delay flag value (float seconds) to a
// duration.
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// readArticleIDs loads the article IDs from an input CSV, which must
// exist and carry an article_id column. Rows with an empty ID are
// skipped with a warning.
func readArticleIDs(path string) []string {
	columns, rows, err := tabular.ReadFile(path)
	if err != nil {
		fatalf("failed to read input file: %v", err)
	}
	if !tabular.HasColumn(columns, "article_id") {
		fatalf("input file %s must contain an 'article_id' column", path)
	}

	var ids []string
	for i, row := range rows {
		id := strings.TrimSpace(row["article_id"])
		if id == "" {
			fmt.Fprintf(os.Stderr, "Warning: missing article_id in row %d, skipping\n", i+1)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// articleRows converts articles to tabular rows. The title column is
// named differently per site ("title" or "headline"), so it is passed
// in.
func articleRows(articles []crawl.Article, titleColumn string) []tabular.Row {
	rows := make([]tabular.Row, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, tabular.Row{
			"article_id":  a.ID,
			"url":         a.URL,
			titleColumn:   a.Title,
			"description": a.Description,
		})
	}
	return rows
}

// commentRows converts flattened comments to tabular rows carrying the
// full parent-linkage columns.
func commentRows(comments []crawl.Comment) []tabular.Row {
	rows := make([]tabular.Row, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, tabular.Row{
			"article_id": c.ArticleID,
			"comment_id": c.ID,
			"parent_id":  c.ParentID,
			"is_reply":   strconv.FormatBool(c.IsReply),
			"content":    c.Content,
			"likes":      strconv.Itoa(c.Likes),
		})
	}
	return rows
}

// writeOutput writes rows to path. An empty result is reported but is
// not a failure: a crawl that finds nothing still exits zero.
func writeOutput(path string, columns []string, rows []tabular.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No rows to save.")
		return
	}
	if err := tabular.WriteFile(path, columns, rows); err != nil {
		fatalf("failed to write %s: %v", path, err)
	}
	fmt.Printf("Saved %d rows to %s\n", len(rows), path)
}
