package vnexpress

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newscrawl/crawl"
	"github.com/pevans/newscrawl/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `
<html><body>
<article class="item-news-common" data-url="https://vnexpress.net/noi-lo-mua-phai-thuoc-gia-4891633.html">
  <h3 class="title-news"><a>Nỗi lo mua phải thuốc giả</a></h3>
  <p class="description"><a>Người bệnh hoang mang</a></p>
</article>
<article class="item-news-common">
  <ins class="adsbyeclick"></ins>
  <h3 class="title-news"><a href="https://vnexpress.net/quang-cao-1.html">Quảng cáo</a></h3>
</article>
<article class="item-news-common">
  <h3 class="title-news"><a href="https://vnexpress.net/sua-gia-4891634.html">Sữa giả bị thu hồi</a></h3>
</article>
<article class="item-news-common">
  <p class="description"><a>Không có tiêu đề</a></p>
</article>
</body></html>`

const topicFixture = `
<html><body>
<div id="list-news">
  <article>
    <div><a href="https://vnexpress.net/triet-pha-duong-day-4890001.html"><span class="title-news">Triệt phá đường dây</span></a></div>
    <p class="description">Hàng giả quy mô lớn</p>
  </article>
  <article>
    <div><span class="title-news">Không có link</span></div>
  </article>
</div>
<article>
  <div><a href="https://vnexpress.net/ngoai-container-4890002.html"><span class="title-news">Ngoài container</span></a></div>
</article>
</body></html>`

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

// TestExtractArticleID verifies the ID pattern.
func TestExtractArticleID(t *testing.T) {
	assert.Equal(t, "4891633",
		ExtractArticleID("https://vnexpress.net/noi-lo-mua-phai-thuoc-gia-4891633.html"))
	assert.Empty(t, ExtractArticleID("https://vnexpress.net/suc-khoe"))
}

// TestParseSearch verifies extraction, the ad-item skip, and the
// data-url attribute taking precedence over the title link.
func TestParseSearch(t *testing.T) {
	articles := ParseSearch(doc(t, searchFixture))

	require.Len(t, articles, 2)
	assert.Equal(t, "4891633", articles[0].ID)
	assert.Equal(t, "Nỗi lo mua phải thuốc giả", articles[0].Title)
	assert.Equal(t, "Người bệnh hoang mang", articles[0].Description)

	assert.Equal(t, "4891634", articles[1].ID, "falls back to the title link href")
	assert.Empty(t, articles[1].Description)
}

// TestParseTopic verifies that only articles inside the #list-news
// container are extracted.
func TestParseTopic(t *testing.T) {
	articles := ParseTopic(doc(t, topicFixture))

	require.Len(t, articles, 1)
	assert.Equal(t, "4890001", articles[0].ID)
	assert.Equal(t, "Triệt phá đường dây", articles[0].Title)
	assert.Equal(t, "Hàng giả quy mô lớn", articles[0].Description)
}

// TestCleanContent verifies entity unescaping, tag stripping, and
// whitespace collapsing.
func TestCleanContent(t *testing.T) {
	in := "&lt;p&gt;Thuốc giả   rất\n nguy hiểm&lt;/p&gt; <b>cẩn thận</b>"
	assert.Equal(t, "Thuốc giả rất nguy hiểm cẩn thận", CleanContent(in))

	assert.Empty(t, CleanContent(""))
	assert.Equal(t, "plain", CleanContent("plain"))
}

// TestComments verifies the comment and reply endpoints end to end
// through flattening, including HTML-cleaned content.
func TestComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index/get":
			assert.Equal(t, "4891633", r.URL.Query().Get("objectid"))
			fmt.Fprint(w, `{"data":{"items":[
				{"comment_id":11,"parent_id":11,"content":"&lt;p&gt;ý kiến&lt;/p&gt;","userlike":5,"replys":{"total":1}},
				{"comment_id":12,"parent_id":12,"content":"không reply","userlike":0,"replys":{"total":0}}
			]}}`)
		case "/index/getreplay":
			assert.Equal(t, "11", r.URL.Query().Get("id"))
			fmt.Fprint(w, `{"data":{"items":[
				{"comment_id":21,"parent_id":11,"content":"đồng ý","userlike":2}
			]}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(crawl.NewClient(5 * time.Second))
	client.APIURL = server.URL

	ctx := context.Background()
	top, err := client.Comments(ctx, "4891633")
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "ý kiến", top[0].Content, "content should be tag-stripped")
	assert.Equal(t, 5, top[0].Likes)
	assert.Equal(t, 1, top[0].ReplyCount)

	rows := crawl.FlattenComments(ctx, "4891633", top, client.Replies, 0)
	require.Len(t, rows, 3)

	assert.False(t, rows[0].IsReply)
	assert.Empty(t, rows[0].ParentID, "self-referential parent is normalized away")

	assert.True(t, rows[1].IsReply)
	assert.Equal(t, "11", rows[1].ParentID)
	assert.Equal(t, "đồng ý", rows[1].Content)

	assert.False(t, rows[2].IsReply)
}

// TestTopicToComments verifies the crawl handoff between commands: a
// parsed topic page round-trips through an article CSV whose article_id
// column then drives the comments crawl. An article ID lost during
// extraction would surface here as an empty column.
func TestTopicToComments(t *testing.T) {
	articles := ParseTopic(doc(t, topicFixture))
	require.NotEmpty(t, articles)

	path := filepath.Join(t.TempDir(), "topic_articles.csv")
	rows := make([]tabular.Row, 0, len(articles))
	for _, a := range articles {
		require.NotEmpty(t, a.ID, "article %s should carry an ID", a.URL)
		rows = append(rows, tabular.Row{
			"article_id":  a.ID,
			"url":         a.URL,
			"headline":    a.Title,
			"description": a.Description,
		})
	}
	require.NoError(t, tabular.WriteFile(path, TopicColumns, rows))

	columns, readRows, err := tabular.ReadFile(path)
	require.NoError(t, err)
	require.True(t, tabular.HasColumn(columns, "article_id"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/index/get", r.URL.Path)
		assert.Equal(t, "4890001", r.URL.Query().Get("objectid"))
		fmt.Fprint(w, `{"data":{"items":[
			{"comment_id":31,"parent_id":31,"content":"bắt hết","userlike":3,"replys":{"total":0}}
		]}}`)
	}))
	defer server.Close()

	client := New(crawl.NewClient(5 * time.Second))
	client.APIURL = server.URL

	for _, row := range readRows {
		comments, err := client.Comments(context.Background(), row["article_id"])
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "bắt hết", comments[0].Content)
	}
}

// TestSearchPage verifies the query parameters reach the endpoint.
func TestSearchPage(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, searchFixture)
	}))
	defer server.Close()

	client := New(crawl.NewClient(5 * time.Second))
	client.SearchURL = server.URL

	articles, err := client.SearchPage(context.Background(), "thuốc giả", 2)
	require.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, "thuốc giả", gotQuery["q"][0])
	assert.Equal(t, "2", gotQuery["page"][0])
	assert.Equal(t, "title,tag_list", gotQuery["search_f"][0])
}

// TestTopicPage verifies the -pN page suffix.
func TestTopicPage(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, topicFixture)
	}))
	defer server.Close()

	client := New(crawl.NewClient(5 * time.Second))

	articles, err := client.TopicPage(context.Background(), server.URL+"/topic/hang-gia-28080", 3)
	require.NoError(t, err)
	assert.Equal(t, "/topic/hang-gia-28080-p3", gotPath)
	assert.Len(t, articles, 1)
}
