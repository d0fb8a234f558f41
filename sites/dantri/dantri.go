// Package dantri crawls article search results and reader comments from
// dantri.com.vn.
package dantri

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newscrawl/crawl"
)

// Columns is the output column order for article files.
var Columns = []string{"article_id", "url", "title", "description"}

// Client talks to the Dantri search pages and comment API. The base
// URLs are exported so tests can point them at a local server.
type Client struct {
	HTTP    *crawl.Client
	BaseURL string
	APIURL  string
}

// New returns a client using the production endpoints.
func New(httpClient *crawl.Client) *Client {
	return &Client{
		HTTP:    httpClient,
		BaseURL: "https://dantri.com.vn",
		APIURL:  "https://webapi.dantri.com.vn",
	}
}

var articleIDRe = regexp.MustCompile(`-(\d+)\.htm$`)

// ExtractArticleID pulls the numeric article ID off the end of a Dantri
// article URL, or returns "" when the URL has no ID segment.
func ExtractArticleID(articleURL string) string {
	if m := articleIDRe.FindStringSubmatch(articleURL); m != nil {
		return m[1]
	}
	return ""
}

// encodeKeyword percent-encodes a search keyword the way the site's own
// search box does: UTF-8 escapes with spaces as '+'.
func encodeKeyword(keyword string) string {
	return strings.ReplaceAll(url.PathEscape(keyword), "%20", "+")
}

var pageParamRe = regexp.MustCompile(`pi=(\d+)`)

// SearchPage fetches one page of search results for keyword. The echoed
// page number comes from the pi= parameter of the final URL: searching
// past the last page redirects back, which is the stop signal for
// redirect-derived pagination.
func (c *Client) SearchPage(ctx context.Context, keyword string, page int) (crawl.RedirectPage, error) {
	searchURL := fmt.Sprintf("%s/tim-kiem/%s.htm?date=165&pi=%d", c.BaseURL, encodeKeyword(keyword), page)

	doc, finalURL, err := c.HTTP.GetHTML(ctx, searchURL)
	if err != nil {
		return crawl.RedirectPage{}, err
	}

	echoed := 0
	if m := pageParamRe.FindStringSubmatch(finalURL); m != nil {
		echoed, _ = strconv.Atoi(m[1])
	}

	return crawl.RedirectPage{
		Articles:   ParseSearch(doc, c.BaseURL, keyword),
		EchoedPage: echoed,
	}, nil
}

// ParseSearch extracts articles from a search results document, keeping
// only those whose title or description contains every term of the
// keyword. Items missing a link or an ID are skipped.
func ParseSearch(doc *goquery.Document, baseURL, keyword string) []crawl.Article {
	var articles []crawl.Article

	doc.Find("article.article-item").Each(func(_ int, item *goquery.Selection) {
		titleLink := item.Find(".article-title a").First()
		href, ok := titleLink.Attr("href")
		if !ok {
			return
		}
		if !strings.HasPrefix(href, "http") {
			href = baseURL + href
		}

		id := ExtractArticleID(href)
		if id == "" {
			return
		}

		title := strings.TrimSpace(titleLink.Text())
		description := strings.TrimSpace(item.Find(".article-excerpt a").First().Text())

		if !matchesKeyword(title, description, keyword) {
			return
		}

		articles = append(articles, crawl.Article{
			ID:          id,
			URL:         href,
			Title:       title,
			Description: description,
		})
	})

	return articles
}

// matchesKeyword reports whether every whitespace-separated term of the
// keyword appears, case-insensitively, in the title or description.
// Search results include loosely related hits; this is the relevance
// filter the crawl applies on top.
func matchesKeyword(title, description, keyword string) bool {
	haystack := strings.ToLower(title) + " " + strings.ToLower(description)
	for _, term := range strings.Fields(keyword) {
		if !strings.Contains(haystack, strings.ToLower(term)) {
			return false
		}
	}
	return true
}
