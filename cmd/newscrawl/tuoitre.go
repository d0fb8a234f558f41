package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pevans/newscrawl/config"
	"github.com/pevans/newscrawl/crawl"
	"github.com/pevans/newscrawl/sites/tuoitre"
	"github.com/pevans/newscrawl/tabular"
)

func runTuoiTreNews(args []string, cfg *config.Config, client *crawl.Client) {
	fs := flag.NewFlagSet("tuoitre news", flag.ExitOnError)
	var keyword string
	fs.StringVar(&keyword, "keyword", "thuốc giả", "Search keyword")
	fs.StringVar(&keyword, "k", "thuốc giả", "Shorthand for --keyword")
	var output string
	fs.StringVar(&output, "output", "tuoitre_articles.csv", "Output CSV file")
	fs.StringVar(&output, "o", "tuoitre_articles.csv", "Shorthand for --output")
	var startDate string
	fs.StringVar(&startDate, "start-date", "2025-01-01", "Start date (YYYY-MM-DD)")
	fs.StringVar(&startDate, "s", "2025-01-01", "Shorthand for --start-date")
	today := time.Now().Format("2006-01-02")
	var endDate string
	fs.StringVar(&endDate, "end-date", today, "End date (YYYY-MM-DD, default today)")
	fs.StringVar(&endDate, "e", today, "Shorthand for --end-date")
	var delay float64
	fs.Float64Var(&delay, "delay", cfg.Crawl.Delay, "Delay between requests in seconds")
	fs.Float64Var(&delay, "d", cfg.Crawl.Delay, "Shorthand for --delay")
	var maxEmpty int
	fs.IntVar(&maxEmpty, "max-empty-pages", cfg.Crawl.MaxEmptyPages, "Consecutive empty pages before stopping")
	fs.IntVar(&maxEmpty, "m", cfg.Crawl.MaxEmptyPages, "Shorthand for --max-empty-pages")
	fs.Parse(args)

	start, err := parseDate(startDate)
	if err != nil {
		fatalf("%v", err)
	}
	end, err := parseDate(endDate)
	if err != nil {
		fatalf("%v", err)
	}
	if start.After(end) {
		fatalf("start date (%s) is after end date (%s)", startDate, endDate)
	}

	fmt.Printf("Searching TuoiTre for %q between %s and %s\n", keyword, startDate, endDate)

	ctx := context.Background()
	site := tuoitre.New(client)

	pager := &crawl.DateWindowPager{
		Fetch: func(ctx context.Context, page int) ([]crawl.Article, error) {
			return site.SearchPage(ctx, keyword, page)
		},
		Start:         start,
		End:           end,
		MaxEmptyPages: maxEmpty,
		Delay:         secondsToDuration(delay),
	}
	articles := pager.Run(ctx)

	// Newest first, undated articles last.
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].Published, articles[j].Published
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	fmt.Printf("Total articles in date range: %d\n", len(articles))
	writeOutput(output, tuoitre.Columns, articleRows(articles, "headline"))
}

func runTuoiTreComments(args []string, cfg *config.Config, client *crawl.Client) {
	fs := flag.NewFlagSet("tuoitre comments", flag.ExitOnError)
	var input string
	fs.StringVar(&input, "input", "", "Input CSV file with article data (required)")
	fs.StringVar(&input, "i", "", "Shorthand for --input")
	var output string
	fs.StringVar(&output, "output", "tuoitre_comments.csv", "Output CSV file")
	fs.StringVar(&output, "o", "tuoitre_comments.csv", "Shorthand for --output")
	var delay float64
	fs.Float64Var(&delay, "delay", cfg.Crawl.Delay, "Delay between articles in seconds")
	fs.Float64Var(&delay, "d", cfg.Crawl.Delay, "Shorthand for --delay")
	fs.Parse(args)

	if input == "" {
		fatalf("--input is required")
	}

	ids := readArticleIDs(input)
	fmt.Printf("Crawling comments for %d articles...\n", len(ids))

	ctx := context.Background()
	site := tuoitre.New(client)

	var rows []tabular.Row
	bar := pb.StartNew(len(ids))
	for i, id := range ids {
		top, err := site.Comments(ctx, id)
		if err != nil {
			log.Printf("article %s: %v (skipping)", id, err)
		} else {
			// Replies come embedded, so flattening needs no fetcher and
			// no pacing between parents.
			for _, c := range crawl.FlattenComments(ctx, id, top, nil, 0) {
				rows = append(rows, tabular.Row{
					"article_id": c.ArticleID,
					"content":    c.Content,
					"reacts":     strconv.Itoa(c.Likes),
				})
			}
		}
		bar.Increment()

		if i < len(ids)-1 {
			time.Sleep(secondsToDuration(delay))
		}
	}
	bar.Finish()

	writeOutput(output, tuoitre.CommentColumns, rows)
}
