package tuoitre

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pevans/newscrawl/crawl"
)

// CommentColumns is the output column order for comment files. TuoiTre
// comment rows are anonymous: the output keeps only the text and the
// summed reaction count.
var CommentColumns = []string{"article_id", "content", "reacts"}

type commentItem struct {
	Content string `json:"content"`
	// Reactions maps reaction names to counts; the output wants the sum.
	Reactions     map[string]int `json:"reactions"`
	ChildComments []commentItem  `json:"child_comments"`
}

type commentResponse struct {
	// Data is usually a JSON-encoded string holding the comment array,
	// but the API sometimes returns the array inline.
	Data json.RawMessage `json:"Data"`
}

// SumReactions totals a reaction count map.
func SumReactions(reactions map[string]int) int {
	total := 0
	for _, n := range reactions {
		total += n
	}
	return total
}

// Comments fetches an article's comments. Replies arrive embedded as
// child_comments, so the returned comments carry their Replies inline
// and flattening needs no reply fetcher.
func (c *Client) Comments(ctx context.Context, articleID string) ([]crawl.Comment, error) {
	apiURL := fmt.Sprintf("%s/api/getlist-comment.api?pagesize=1000&objId=%s&objType=1&sort=2", c.APIURL, articleID)

	var resp commentResponse
	if err := c.HTTP.GetJSON(ctx, apiURL, &resp); err != nil {
		return nil, err
	}

	items, err := decodeData(resp.Data)
	if err != nil {
		return nil, &crawl.ParseError{Site: "tuoitre", Err: err}
	}

	comments := make([]crawl.Comment, 0, len(items))
	for _, item := range items {
		comment := crawl.Comment{
			ArticleID:  articleID,
			Content:    item.Content,
			Likes:      SumReactions(item.Reactions),
			ReplyCount: len(item.ChildComments),
		}
		for _, child := range item.ChildComments {
			comment.Replies = append(comment.Replies, crawl.Comment{
				ArticleID: articleID,
				Content:   child.Content,
				Likes:     SumReactions(child.Reactions),
			})
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// decodeData unwraps the comment array from the Data field, handling
// both the double-encoded string form and the inline array form.
func decodeData(data json.RawMessage) ([]commentItem, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var items []commentItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("unexpected Data shape: %w", err)
	}
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, fmt.Errorf("failed to decode embedded comment JSON: %w", err)
	}
	return items, nil
}
