package crawl

import "fmt"

// FetchError reports a failed HTTP round trip: a transport failure, a
// non-2xx status, or a body that could not be decoded. Callers treat the
// unit of work behind the failed fetch (one page, one article's
// comments) as empty rather than aborting the run.
type FetchError struct {
	URL        string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a single malformed record inside an otherwise
// usable payload. Parsers drop the record and continue; they never let a
// bad record fail the page.
type ParseError struct {
	Site string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s record: %v", e.Site, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
