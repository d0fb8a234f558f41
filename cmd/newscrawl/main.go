// Command newscrawl crawls news-article metadata and reader comments
// from three Vietnamese news sites and writes them to CSV files. Each
// subcommand is an independent sequential batch run.
package main

import (
	"fmt"
	"os"

	"github.com/pevans/newscrawl/config"
	"github.com/pevans/newscrawl/crawl"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("%v", err)
	}

	client := crawl.NewClient(cfg.Timeout())
	client.SetUserAgent(cfg.HTTP.UserAgent)

	switch os.Args[1] {
	case "dantri":
		handleSiteCommand("dantri", os.Args[2:], cfg, client,
			runDantriNews, runDantriComments)
	case "tuoitre":
		handleSiteCommand("tuoitre", os.Args[2:], cfg, client,
			runTuoiTreNews, runTuoiTreComments)
	case "vnexpress":
		handleVnExpress(os.Args[2:], cfg, client)
	case "clean":
		runClean(os.Args[2:])
	case "filter":
		runFilter(os.Args[2:], cfg)
	case "rss":
		runRSS(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// siteAction is one site subcommand (news or comments crawl).
type siteAction func(args []string, cfg *config.Config, client *crawl.Client)

func handleSiteCommand(site string, args []string, cfg *config.Config, client *crawl.Client, news, comments siteAction) {
	if len(args) < 1 {
		fatalf("usage: newscrawl %s <news|comments> [flags]", site)
	}
	switch args[0] {
	case "news":
		news(args[1:], cfg, client)
	case "comments":
		comments(args[1:], cfg, client)
	default:
		fatalf("unknown %s action: %s (use news or comments)", site, args[0])
	}
}

func handleVnExpress(args []string, cfg *config.Config, client *crawl.Client) {
	if len(args) < 1 {
		fatalf("usage: newscrawl vnexpress <search|topic|comments> [flags]")
	}
	switch args[0] {
	case "search":
		runVnExpressSearch(args[1:], cfg, client)
	case "topic":
		runVnExpressTopic(args[1:], cfg, client)
	case "comments":
		runVnExpressComments(args[1:], cfg, client)
	default:
		fatalf("unknown vnexpress action: %s (use search, topic, or comments)", args[0])
	}
}

func printUsage() {
	fmt.Println("newscrawl - Vietnamese news article and comment crawler")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  newscrawl <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  dantri news          Crawl Dantri search results for keywords")
	fmt.Println("  dantri comments      Crawl comments for Dantri articles")
	fmt.Println("  tuoitre news         Crawl TuoiTre search results in a date window")
	fmt.Println("  tuoitre comments     Crawl comments for TuoiTre articles")
	fmt.Println("  vnexpress search     Crawl VnExpress keyword search results")
	fmt.Println("  vnexpress topic      Crawl a VnExpress topic listing")
	fmt.Println("  vnexpress comments   Crawl comments for VnExpress articles")
	fmt.Println("  rss                  Discover articles through an RSS/Atom feed")
	fmt.Println("  filter               Keep article rows whose headline matches keywords")
	fmt.Println("  clean                Remove columns from a CSV file")
	fmt.Println("  help                 Show this help message")
	fmt.Println()
	fmt.Println("Defaults can be set in ~/.newscrawl/config.yaml.")
}
