package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pevans/newscrawl/config"
	"github.com/pevans/newscrawl/crawl"
	"github.com/pevans/newscrawl/sites/vnexpress"
	"github.com/pevans/newscrawl/tabular"
)

// replyFetchDelay paces the secondary reply fetches inside one
// article's comment tree, matching the pause the upstream rate limiter
// tolerates.
const replyFetchDelay = 200 * time.Millisecond

func runVnExpressSearch(args []string, cfg *config.Config, client *crawl.Client) {
	fs := flag.NewFlagSet("vnexpress search", flag.ExitOnError)
	var keyword string
	fs.StringVar(&keyword, "keyword", "thuốc giả", "Search keyword")
	fs.StringVar(&keyword, "k", "thuốc giả", "Shorthand for --keyword")
	var output string
	fs.StringVar(&output, "output", "vnexpress_articles.csv", "Output CSV file")
	fs.StringVar(&output, "o", "vnexpress_articles.csv", "Shorthand for --output")
	var maxPages int
	fs.IntVar(&maxPages, "max-pages", 4, "Number of search pages to crawl")
	fs.IntVar(&maxPages, "p", 4, "Shorthand for --max-pages")
	var delay float64
	fs.Float64Var(&delay, "delay", cfg.Crawl.Delay, "Delay between requests in seconds")
	fs.Float64Var(&delay, "d", cfg.Crawl.Delay, "Shorthand for --delay")
	fs.Parse(args)

	ctx := context.Background()
	site := vnexpress.New(client)
	set := crawl.NewArticleSet()

	for page := 1; page <= maxPages; page++ {
		fmt.Printf("Fetching search results page %d...\n", page)
		articles, err := site.SearchPage(ctx, keyword, page)
		if err != nil {
			log.Printf("page %d: %v (skipping)", page, err)
		} else {
			fmt.Printf("Found %d articles on page %d\n", len(articles), page)
			set.AddAll(articles)
		}

		if page < maxPages {
			time.Sleep(secondsToDuration(delay))
		}
	}

	fmt.Printf("Total articles found: %d\n", set.Len())
	writeOutput(output, vnexpress.SearchColumns, articleRows(set.Articles(), "title"))
}

func runVnExpressTopic(args []string, cfg *config.Config, client *crawl.Client) {
	fs := flag.NewFlagSet("vnexpress topic", flag.ExitOnError)
	var topicURL string
	fs.StringVar(&topicURL, "url", "", "Topic base URL, without the -pN page suffix (required)")
	fs.StringVar(&topicURL, "u", "", "Shorthand for --url")
	var output string
	fs.StringVar(&output, "output", "vnexpress_topic_articles.csv", "Output CSV file")
	fs.StringVar(&output, "o", "vnexpress_topic_articles.csv", "Shorthand for --output")
	var maxPages int
	fs.IntVar(&maxPages, "max-pages", 4, "Number of topic pages to crawl")
	fs.IntVar(&maxPages, "p", 4, "Shorthand for --max-pages")
	var delay float64
	fs.Float64Var(&delay, "delay", cfg.Crawl.Delay, "Delay between requests in seconds")
	fs.Float64Var(&delay, "d", cfg.Crawl.Delay, "Shorthand for --delay")
	fs.Parse(args)

	if topicURL == "" {
		fatalf("--url is required")
	}

	ctx := context.Background()
	site := vnexpress.New(client)
	set := crawl.NewArticleSet()

	for page := 1; page <= maxPages; page++ {
		fmt.Printf("Scraping topic page %d...\n", page)
		articles, err := site.TopicPage(ctx, topicURL, page)
		if err != nil {
			log.Printf("page %d: %v (skipping)", page, err)
		} else {
			fmt.Printf("Found %d articles on page %d\n", len(articles), page)
			set.AddAll(articles)
		}

		if page < maxPages {
			time.Sleep(secondsToDuration(delay))
		}
	}

	fmt.Printf("Total articles found: %d\n", set.Len())
	writeOutput(output, vnexpress.TopicColumns, articleRows(set.Articles(), "headline"))
}

func runVnExpressComments(args []string, cfg *config.Config, client *crawl.Client) {
	fs := flag.NewFlagSet("vnexpress comments", flag.ExitOnError)
	var input string
	fs.StringVar(&input, "input", "", "Input CSV file with article data (required)")
	fs.StringVar(&input, "i", "", "Shorthand for --input")
	var output string
	fs.StringVar(&output, "output", "comments.csv", "Output CSV file")
	fs.StringVar(&output, "o", "comments.csv", "Shorthand for --output")
	var delay float64
	fs.Float64Var(&delay, "delay", 0.5, "Delay between articles in seconds")
	fs.Float64Var(&delay, "d", 0.5, "Shorthand for --delay")
	var updateArticles bool
	fs.BoolVar(&updateArticles, "update-articles", false, "Rewrite the input file with a comment_count column")
	fs.BoolVar(&updateArticles, "u", false, "Shorthand for --update-articles")
	fs.Parse(args)

	if input == "" {
		fatalf("--input is required")
	}

	ids := readArticleIDs(input)
	fmt.Printf("Crawling comments for %d articles...\n", len(ids))

	ctx := context.Background()
	site := vnexpress.New(client)

	var all []crawl.Comment
	counts := make(map[string]int, len(ids))
	bar := pb.StartNew(len(ids))
	for i, id := range ids {
		top, err := site.Comments(ctx, id)
		if err != nil {
			log.Printf("article %s: %v (skipping)", id, err)
		} else {
			rows := crawl.FlattenComments(ctx, id, top, site.Replies, replyFetchDelay)
			counts[id] = len(rows)
			all = append(all, rows...)
		}
		bar.Increment()

		if i < len(ids)-1 {
			time.Sleep(secondsToDuration(delay))
		}
	}
	bar.Finish()

	writeOutput(output, vnexpress.CommentColumns, commentRows(all))

	if updateArticles {
		if err := addCommentCounts(input, counts); err != nil {
			fatalf("failed to update %s: %v", input, err)
		}
		fmt.Printf("Updated %s with comment counts\n", input)
	}
}

// addCommentCounts rewrites an article CSV in place with a
// comment_count column filled from this run's results. Articles the run
// found nothing for get zero.
func addCommentCounts(path string, counts map[string]int) error {
	columns, rows, err := tabular.ReadFile(path)
	if err != nil {
		return err
	}
	if !tabular.HasColumn(columns, "comment_count") {
		columns = append(columns, "comment_count")
	}
	for _, row := range rows {
		row["comment_count"] = strconv.Itoa(counts[row["article_id"]])
	}
	return tabular.WriteFile(path, columns, rows)
}
