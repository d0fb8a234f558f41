package vnexpress

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newscrawl/crawl"
)

// CommentColumns is the output column order for comment files.
var CommentColumns = []string{"article_id", "comment_id", "parent_id", "is_reply", "content", "likes"}

// jsonID accepts an ID served as either a JSON number or a string.
type jsonID string

func (id *jsonID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*id = jsonID(s)
	return nil
}

type commentItem struct {
	CommentID jsonID `json:"comment_id"`
	ParentID  jsonID `json:"parent_id"`
	Content   string `json:"content"`
	UserLike  int    `json:"userlike"`
	Replies   struct {
		Total int `json:"total"`
	} `json:"replys"`
}

type commentResponse struct {
	Data struct {
		Items []commentItem `json:"items"`
	} `json:"data"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanContent strips markup from a comment body: the API serves
// HTML-escaped rich text. Entities are unescaped, tags removed, and
// whitespace collapsed to single spaces.
func CleanContent(content string) string {
	unescaped := html.UnescapeString(content)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(unescaped))
	text := unescaped
	if err == nil {
		text = doc.Text()
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Comments fetches an article's top-level comments, with reply totals
// set so flattening knows which parents need a reply fetch.
func (c *Client) Comments(ctx context.Context, articleID string) ([]crawl.Comment, error) {
	apiURL := fmt.Sprintf(
		"%s/index/get?offset=0&limit=1000&frommobile=0&sort_by=like&objectid=%s&objecttype=1&siteid=1000000&usertype=4",
		c.APIURL, articleID)

	var resp commentResponse
	if err := c.HTTP.GetJSON(ctx, apiURL, &resp); err != nil {
		return nil, err
	}

	comments := make([]crawl.Comment, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		comments = append(comments, crawl.Comment{
			ID:         string(item.CommentID),
			ArticleID:  articleID,
			Content:    CleanContent(item.Content),
			Likes:      item.UserLike,
			ReplyCount: item.Replies.Total,
		})
	}
	return comments, nil
}

// Replies fetches the replies of one comment. Satisfies
// crawl.ReplyFetcher.
func (c *Client) Replies(ctx context.Context, articleID, commentID string) ([]crawl.Comment, error) {
	apiURL := fmt.Sprintf(
		"%s/index/getreplay?siteid=1000000&objectid=%s&objecttype=1&id=%s&limit=12&offset=0&sort_by=like",
		c.APIURL, articleID, commentID)

	var resp commentResponse
	if err := c.HTTP.GetJSON(ctx, apiURL, &resp); err != nil {
		return nil, err
	}

	replies := make([]crawl.Comment, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		replies = append(replies, crawl.Comment{
			ID:        string(item.CommentID),
			ArticleID: articleID,
			Content:   CleanContent(item.Content),
			Likes:     item.UserLike,
		})
	}
	return replies, nil
}
