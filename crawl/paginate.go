package crawl

import (
	"context"
	"log"
	"time"
)

// DefaultMaxEmptyPages is how many consecutive empty pages the
// date-window controller tolerates before giving up.
const DefaultMaxEmptyPages = 3

// sleep waits for d, returning false if the context was cancelled first.
// A zero or negative delay never blocks, so callers can disable pacing
// entirely.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// RedirectPage is the result of fetching one page from a search endpoint
// that redirects out-of-range page requests back to the last real page.
type RedirectPage struct {
	Articles []Article
	// EchoedPage is the page number embedded in the final URL after
	// redirects, or zero if none was present.
	EchoedPage int
}

// RedirectPager walks a paginated source page by page, stopping when the
// echoed page number falls below the requested one: that means the
// request overshot the available results and was redirected back, so the
// page's content is a repeat and is discarded.
type RedirectPager struct {
	// Fetch retrieves one page. A fetch error ends the walk (the
	// original crawler treats it as having reached the last page).
	Fetch func(ctx context.Context, page int) (RedirectPage, error)
	// Delay is the pause between page requests. Zero disables pacing.
	Delay time.Duration
}

// Run requests pages starting at 1 and returns every article collected
// before the stop condition hit.
func (p *RedirectPager) Run(ctx context.Context) []Article {
	var all []Article

	for page := 1; ; page++ {
		result, err := p.Fetch(ctx, page)
		if err != nil {
			log.Printf("page %d: %v (stopping)", page, err)
			return all
		}

		if result.EchoedPage != 0 && result.EchoedPage < page {
			// Redirected back to an earlier page: page overshot the
			// results, and its content duplicates a page we already have.
			log.Printf("reached last page (%d)", page-1)
			return all
		}

		all = append(all, result.Articles...)

		if !sleep(ctx, p.Delay) {
			return all
		}
	}
}

// DateWindowPager walks a paginated source whose results trend older
// with each page, keeping articles published inside [Start, End]. It
// stops once the oldest article seen on a page predates Start (that
// page's in-range articles are still kept), or after MaxEmptyPages
// consecutive pages without any parsed article.
type DateWindowPager struct {
	// Fetch retrieves and parses one page. Errors degrade to an empty
	// page rather than ending the walk.
	Fetch func(ctx context.Context, page int) ([]Article, error)
	Start time.Time
	End   time.Time
	// MaxEmptyPages defaults to DefaultMaxEmptyPages when zero.
	MaxEmptyPages int
	Delay         time.Duration
}

// Run requests pages starting at 1 and returns the in-range articles.
func (p *DateWindowPager) Run(ctx context.Context) []Article {
	maxEmpty := p.MaxEmptyPages
	if maxEmpty <= 0 {
		maxEmpty = DefaultMaxEmptyPages
	}

	var all []Article
	emptyPages := 0

	for page := 1; emptyPages < maxEmpty; page++ {
		articles, err := p.Fetch(ctx, page)
		if err != nil {
			log.Printf("page %d: %v (treating as empty)", page, err)
			articles = nil
		}

		if len(articles) == 0 {
			emptyPages++
			log.Printf("no articles on page %d (%d/%d empty)", page, emptyPages, maxEmpty)
			if !sleep(ctx, p.Delay) {
				break
			}
			continue
		}
		emptyPages = 0

		var oldest *time.Time
		for _, a := range articles {
			if a.Published == nil {
				continue
			}
			if oldest == nil || a.Published.Before(*oldest) {
				oldest = a.Published
			}
			if !a.Published.Before(p.Start) && !a.Published.After(p.End) {
				all = append(all, a)
			}
		}

		// Results arrive newest first, so once a page reaches back past
		// the start of the window there is nothing left to find.
		if oldest != nil && oldest.Before(p.Start) {
			log.Printf("page %d reaches past %s, stopping", page, p.Start.Format("2006-01-02"))
			break
		}

		if !sleep(ctx, p.Delay) {
			break
		}
	}

	return all
}
