package crawl

import "time"

// Article represents one news article discovered on a search or listing
// page. The ID is the numeric segment each site embeds in its article
// URLs and is the record's identity for deduplication.
type Article struct {
	ID          string
	URL         string
	Title       string
	Description string
	// Published is only known for sites that encode a date in the
	// article ID (TuoiTre). It is used for date-window pagination and is
	// never written to the output file.
	Published *time.Time
}

// Comment represents one reader comment, either top-level or a reply.
// Top-level comments carry an empty ParentID regardless of how the
// upstream API marks them (some sites use a self-referential parent,
// some use null).
type Comment struct {
	ID        string
	ParentID  string
	ArticleID string
	Content   string
	Likes     int
	IsReply   bool

	// ReplyCount is the reply total declared by the comment-listing API.
	// It only drives the secondary reply fetch during flattening.
	ReplyCount int
	// Replies holds replies that arrived embedded in the parent payload
	// (TuoiTre). When set, flattening uses them directly instead of
	// issuing a reply fetch.
	Replies []Comment
}
