package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/pevans/newscrawl/crawl"
	"github.com/pevans/newscrawl/feeds"
)

func runRSS(args []string) {
	fs := flag.NewFlagSet("rss", flag.ExitOnError)
	var feedURL string
	fs.StringVar(&feedURL, "url", "", "Feed URL (required)")
	fs.StringVar(&feedURL, "u", "", "Shorthand for --url")
	var output string
	fs.StringVar(&output, "output", "feed_articles.csv", "Output CSV file")
	fs.StringVar(&output, "o", "feed_articles.csv", "Shorthand for --output")
	var startDate string
	fs.StringVar(&startDate, "start-date", "", "Discard items published before this date (YYYY-MM-DD)")
	fs.StringVar(&startDate, "s", "", "Shorthand for --start-date")
	fs.Parse(args)

	if feedURL == "" {
		fatalf("--url is required")
	}

	var cutoff time.Time
	if startDate != "" {
		t, err := parseDate(startDate)
		if err != nil {
			fatalf("%v", err)
		}
		cutoff = t
	}

	fmt.Printf("Fetching feed %s...\n", feedURL)
	feed, err := feeds.FetchFeed(feedURL)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Fetched %q (%s) with %d items\n", feed.Title, feed.FeedType, len(feed.Items))

	articles := feeds.FeedToArticles(feed, cutoff)

	set := crawl.NewArticleSet()
	set.AddAll(articles)

	writeOutput(output, feeds.Columns, articleRows(set.Articles(), "title"))
}
