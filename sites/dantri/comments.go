package dantri

import (
	"context"
	"fmt"
	"strings"

	"github.com/pevans/newscrawl/crawl"
)

// CommentColumns is the output column order for comment files.
var CommentColumns = []string{"article_id", "comment_id", "parent_id", "is_reply", "content", "likes"}

// jsonID accepts an ID that the API serves as either a JSON number or a
// string, normalizing to a string.
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
	CommentID jsonID `json:"commentId"`
	ParentID  jsonID `json:"parentId"`
	Content   string `json:"commentContent"`
	Reactions struct {
		Total int `json:"total"`
	} `json:"reactions"`
	ReplyCount int `json:"replyCount"`
}

type commentResponse struct {
	Items []commentItem `json:"items"`
}

func (c *Client) listCommentURL(objectID string, reply bool) string {
	u := fmt.Sprintf("%s/listcomment?objectId=%s&objectType=1&offset=0&limit=10000&orderBy=popular", c.APIURL, objectID)
	if reply {
		u += "&isReply=True"
	}
	return u
}

// Comments fetches the top-level comments of an article, with each
// comment's declared reply count set so flattening knows which parents
// need a reply fetch.
func (c *Client) Comments(ctx context.Context, articleID string) ([]crawl.Comment, error) {
	var resp commentResponse
	if err := c.HTTP.GetJSON(ctx, c.listCommentURL(articleID, false), &resp); err != nil {
		return nil, err
	}

	comments := make([]crawl.Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		comments = append(comments, crawl.Comment{
			ID:         string(item.CommentID),
			ArticleID:  articleID,
			Content:    item.Content,
			Likes:      item.Reactions.Total,
			ReplyCount: item.ReplyCount,
		})
	}
	return comments, nil
}

// Replies fetches the replies of one comment. The endpoint is the
// comment listing again, scoped to the comment's ID. Satisfies
// crawl.ReplyFetcher.
func (c *Client) Replies(ctx context.Context, articleID, commentID string) ([]crawl.Comment, error) {
	var resp commentResponse
	if err := c.HTTP.GetJSON(ctx, c.listCommentURL(commentID, true), &resp); err != nil {
		return nil, err
	}

	replies := make([]crawl.Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		replies = append(replies, crawl.Comment{
			ID:        string(item.CommentID),
			ArticleID: articleID,
			Content:   item.Content,
			Likes:     item.Reactions.Total,
		})
	}
	return replies, nil
}
