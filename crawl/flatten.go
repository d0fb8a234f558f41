package crawl

import (
	"context"
	"log"
	"time"
)

// ReplyFetcher retrieves the replies of one top-level comment. The reply
// listing is a separate API call on every site that nests this deep, so
// flattening takes the capability as a callback rather than assuming the
// replies arrived with the parent.
type ReplyFetcher func(ctx context.Context, articleID, commentID string) ([]Comment, error)

// FlattenComments linearizes a two-level comment tree into the row order
// the output file uses: each top-level comment immediately followed by
// its replies in the order the API returned them.
//
// Replies come, per comment, from one of two places: embedded in the
// parent payload (Replies already populated), or via fetchReplies when
// the parent declares a positive ReplyCount. A failed reply fetch is
// logged and skips that parent's replies only. The delay runs between
// top-level comments (not after the last) and may be zero.
func FlattenComments(ctx context.Context, articleID string, top []Comment, fetchReplies ReplyFetcher, delay time.Duration) []Comment {
	var rows []Comment

	for i, c := range top {
		c.ArticleID = articleID
		c.ParentID = ""
		c.IsReply = false
		rows = append(rows, c)

		replies := c.Replies
		if replies == nil && c.ReplyCount > 0 && fetchReplies != nil {
			fetched, err := fetchReplies(ctx, articleID, c.ID)
			if err != nil {
				log.Printf("failed to fetch replies for comment %s: %v", c.ID, err)
			} else {
				replies = fetched
			}
		}

		for _, r := range replies {
			r.ArticleID = articleID
			r.ParentID = c.ID
			r.IsReply = true
			rows = append(rows, r)
		}

		if i < len(top)-1 {
			if !sleep(ctx, delay) {
				break
			}
		}
	}

	return rows
}
