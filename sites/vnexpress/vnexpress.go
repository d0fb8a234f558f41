// Package vnexpress crawls article listings (keyword search and topic
// pages) and reader comments from vnexpress.net.
package vnexpress

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newscrawl/crawl"
)

// SearchColumns is the output column order for keyword search results.
var SearchColumns = []string{"article_id", "url", "title", "description"}

// TopicColumns is the output column order for topic listing results.
var TopicColumns = []string{"article_id", "url", "headline", "description"}

// Client talks to the VnExpress search, topic, and comment endpoints.
type Client struct {
	HTTP      *crawl.Client
	SearchURL string
	APIURL    string
	// FromDate and ToDate are optional unix timestamps narrowing the
	// keyword search window. Zero leaves the parameter empty.
	FromDate int64
	ToDate   int64
}

// New returns a client using the production endpoints.
func New(httpClient *crawl.Client) *Client {
	return &Client{
		HTTP:      httpClient,
		SearchURL: "https://timkiem.vnexpress.net",
		APIURL:    "https://usi-saas.vnexpress.net",
	}
}

var articleIDRe = regexp.MustCompile(`-(\d+)\.html`)

// ExtractArticleID pulls the numeric article ID out of a VnExpress URL,
// or returns "" when absent.
func ExtractArticleID(articleURL string) string {
	if m := articleIDRe.FindStringSubmatch(articleURL); m != nil {
		return m[1]
	}
	return ""
}

// SearchPage fetches and parses one page of keyword search results.
func (c *Client) SearchPage(ctx context.Context, keyword string, page int) ([]crawl.Article, error) {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("media_type", "all")
	params.Set("search_f", "title,tag_list")
	params.Set("date_format", "all")
	params.Set("latest", "")
	params.Set("cate_code", "")
	params.Set("fromdate", optionalTimestamp(c.FromDate))
	params.Set("todate", optionalTimestamp(c.ToDate))
	params.Set("page", fmt.Sprintf("%d", page))

	doc, _, err := c.HTTP.GetHTML(ctx, c.SearchURL+"/?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return ParseSearch(doc), nil
}

func optionalTimestamp(ts int64) string {
	if ts == 0 {
		return ""
	}
	return fmt.Sprintf("%d", ts)
}

// ParseSearch extracts articles from a search results document. Ad
// blocks masquerading as result items are skipped, as are items without
// a link or title.
func ParseSearch(doc *goquery.Document) []crawl.Article {
	var articles []crawl.Article

	doc.Find("article.item-news-common").Each(func(_ int, item *goquery.Selection) {
		if item.Find("ins.adsbyeclick").Length() > 0 {
			return
		}

		articleURL, ok := item.Attr("data-url")
		if !ok || articleURL == "" {
			articleURL, _ = item.Find("h3.title-news a").First().Attr("href")
		}
		if articleURL == "" {
			return
		}

		title := strings.TrimSpace(item.Find("h3.title-news a").First().Text())
		if title == "" {
			return
		}

		articles = append(articles, crawl.Article{
			ID:          ExtractArticleID(articleURL),
			URL:         articleURL,
			Title:       title,
			Description: strings.TrimSpace(item.Find("p.description a").First().Text()),
		})
	})

	return articles
}

// TopicPage fetches and parses one page of a topic listing. The topic
// URL is the base slug URL; page N is addressed by appending "-pN".
func (c *Client) TopicPage(ctx context.Context, topicURL string, page int) ([]crawl.Article, error) {
	doc, _, err := c.HTTP.GetHTML(ctx, fmt.Sprintf("%s-p%d", topicURL, page))
	if err != nil {
		return nil, err
	}
	return ParseTopic(doc), nil
}

// ParseTopic extracts articles from a topic listing document. The
// articles live inside the #list-news container; pages without it parse
// as empty.
func ParseTopic(doc *goquery.Document) []crawl.Article {
	var articles []crawl.Article

	doc.Find("div#list-news article").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a[href]").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		articles = append(articles, crawl.Article{
			ID:          ExtractArticleID(href),
			URL:         href,
			Title:       strings.TrimSpace(item.Find(".title-news").First().Text()),
			Description: strings.TrimSpace(item.Find(".description").First().Text()),
		})
	})

	return articles
}
