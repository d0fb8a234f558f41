package feeds

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Sức khỏe</title>
  <item>
    <title>Nỗi lo mua phải thuốc giả</title>
    <link>https://vnexpress.net/noi-lo-mua-phai-thuoc-gia-4891633.html</link>
    <description>Người bệnh hoang mang</description>
    <pubDate>Mon, 13 Jan 2025 09:00:00 +0700</pubDate>
  </item>
  <item>
    <title>Sữa giả bị thu hồi</title>
    <link>https://tuoitre.vn/sua-gia-bi-thu-hoi-20250102080000111.htm</link>
    <pubDate>Thu, 02 Jan 2025 08:00:00 +0700</pubDate>
  </item>
</channel>
</rss>`

// TestItemToArticle verifies the numeric-tail ID extraction and the
// published timestamp mapping.
func TestItemToArticle(t *testing.T) {
	published := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "Nỗi lo mua phải thuốc giả",
		Link:            "https://vnexpress.net/noi-lo-mua-phai-thuoc-gia-4891633.html",
		Description:     "Người bệnh hoang mang",
		PublishedParsed: &published,
	}

	a := ItemToArticle(item)
	assert.Equal(t, "4891633", a.ID)
	assert.Equal(t, item.Link, a.URL)
	assert.Equal(t, item.Title, a.Title)
	assert.Equal(t, item.Description, a.Description)
	require.NotNil(t, a.Published)
	assert.True(t, published.Equal(*a.Published))
}

// TestItemToArticle_UUIDFallback verifies that items without a numeric
// link tail still get a usable ID.
func TestItemToArticle_UUIDFallback(t *testing.T) {
	a := ItemToArticle(&gofeed.Item{
		Title: "Chuyên trang",
		Link:  "https://vnexpress.net/suc-khoe",
	})

	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err, "fallback ID should be a valid UUID")
}

// TestItemToArticle_UpdatedFallback verifies that the updated timestamp
// fills in when no published timestamp exists.
func TestItemToArticle_UpdatedFallback(t *testing.T) {
	updated := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	a := ItemToArticle(&gofeed.Item{
		Link:          "https://vnexpress.net/bai-viet-123.html",
		UpdatedParsed: &updated,
	})

	require.NotNil(t, a.Published)
	assert.True(t, updated.Equal(*a.Published))
}

// TestFeedToArticles_Cutoff verifies that the cutoff drops older items
// and that a zero cutoff keeps everything.
func TestFeedToArticles_Cutoff(t *testing.T) {
	old := time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	feed := &gofeed.Feed{Items: []*gofeed.Item{
		{Link: "https://example.com/a-1.html", PublishedParsed: &recent},
		{Link: "https://example.com/b-2.html", PublishedParsed: &old},
		{Link: "https://example.com/c-3.html"},
		nil,
	}}

	all := FeedToArticles(feed, time.Time{})
	assert.Len(t, all, 3)

	cut := FeedToArticles(feed, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, cut, 2, "undated items survive a cutoff")
	assert.Equal(t, "1", cut[0].ID)
	assert.Equal(t, "3", cut[1].ID)
}

// TestFetchFeed verifies feed retrieval and parsing over HTTP.
func TestFetchFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFixture)
	}))
	defer server.Close()

	feed, err := FetchFeed(server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Sức khỏe", feed.Title)
	require.Len(t, feed.Items, 2)

	articles := FeedToArticles(feed, time.Time{})
	require.Len(t, articles, 2)
	assert.Equal(t, "4891633", articles[0].ID)
	assert.Equal(t, "20250102080000111", articles[1].ID)
}

// TestFetchFeed_BadURL verifies that an unreachable feed yields an
// error.
func TestFetchFeed_BadURL(t *testing.T) {
	_, err := FetchFeed("http://127.0.0.1:1/feed.rss")
	assert.Error(t, err)
}
