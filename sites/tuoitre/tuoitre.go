// Package tuoitre crawls article search results and reader comments
// from tuoitre.vn.
package tuoitre

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newscrawl/crawl"
)

// Columns is the output column order for article files.
var Columns = []string{"article_id", "url", "headline", "description"}

// Client talks to the TuoiTre timeline search and comment API.
type Client struct {
	HTTP    *crawl.Client
	BaseURL string
	APIURL  string
}

// New returns a client using the production endpoints.
func New(httpClient *crawl.Client) *Client {
	return &Client{
		HTTP:    httpClient,
		BaseURL: "https://tuoitre.vn",
		APIURL:  "https://id.tuoitre.vn",
	}
}

// TuoiTre article IDs are 14+ digit timestamps, e.g.
// .../...-hen-suyen-gia-20250529092525297.htm
var articleIDRe = regexp.MustCompile(`-(\d{14,})\.htm`)

// ExtractArticleID pulls the long numeric ID out of an article URL, or
// returns "" when absent.
func ExtractArticleID(articleURL string) string {
	if m := articleIDRe.FindStringSubmatch(articleURL); m != nil {
		return m[1]
	}
	return ""
}

// ArticleDate decodes the publication date from the first eight digits
// of an article ID (yyyymmdd). Returns nil for IDs too short or with a
// nonsense date prefix.
func ArticleDate(articleID string) *time.Time {
	if len(articleID) < 8 {
		return nil
	}
	t, err := time.Parse("20060102", articleID[:8])
	if err != nil {
		return nil
	}
	return &t
}

// SearchPage fetches and parses one page of timeline search results for
// keyword. Suitable as the fetch function of a crawl.DateWindowPager:
// every returned article carries its Published date decoded from the ID.
func (c *Client) SearchPage(ctx context.Context, keyword string, page int) ([]crawl.Article, error) {
	searchURL := fmt.Sprintf("%s/timeline-search.htm?keywords=%s&PageIndex=%d", c.BaseURL, url.QueryEscape(keyword), page)

	doc, _, err := c.HTTP.GetHTML(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	return ParseSearch(doc, c.BaseURL), nil
}

// ParseSearch extracts articles from a timeline search document,
// skipping items without a usable link or ID.
func ParseSearch(doc *goquery.Document, baseURL string) []crawl.Article {
	var articles []crawl.Article

	doc.Find("div.box-category-item").Each(func(_ int, item *goquery.Selection) {
		titleLink := item.Find("a.box-category-link-title").First()
		href, ok := titleLink.Attr("href")
		if !ok || href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = baseURL + href
		}

		id := ExtractArticleID(href)
		if id == "" {
			return
		}

		articles = append(articles, crawl.Article{
			ID:          id,
			URL:         href,
			Title:       strings.TrimSpace(titleLink.Text()),
			Description: strings.TrimSpace(item.Find(`p[data-type="sapo"]`).First().Text()),
			Published:   ArticleDate(id),
		})
	})

	return articles
}
