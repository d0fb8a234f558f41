package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds every HTTP round trip unless the config file
// overrides it. The original scripts relied on whatever their HTTP layer
// defaulted to; here the timeout is explicit.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent on every request. The search endpoints serve
// different markup to clients without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client issues the sequential HTTP requests every crawl is built from.
// One Client is shared across all requests of a run so connections are
// reused, mirroring the session reuse in the original crawler.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client with the given timeout. A zero or negative
// timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  DefaultUserAgent,
	}
}

// SetUserAgent overrides the User-Agent header for subsequent requests.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// get performs one GET and returns the response. The caller owns the
// body. Redirects are followed; the response carries the final URL.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// GetHTML fetches a page and parses it into a goquery document. The
// returned finalURL is the URL after any redirects, which the
// redirect-derived pagination stop rule inspects.
func (c *Client) GetHTML(ctx context.Context, url string) (doc *goquery.Document, finalURL string, err error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	finalURL = resp.Request.URL.String()

	doc, err = goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, "", &FetchError{URL: url, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}
	return doc, finalURL, nil
}

// GetJSON fetches a URL and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{URL: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &FetchError{URL: url, Err: fmt.Errorf("failed to decode JSON: %w", err)}
	}
	return nil
}
