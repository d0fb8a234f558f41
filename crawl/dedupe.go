package crawl

// ArticleSet collects articles by ID. The same article routinely shows
// up under several search keywords, so inserts with a known ID replace
// the stored value (last write wins) while keeping the position the ID
// first appeared at, matching the original crawler's dict-based dedupe.
// Articles without an ID carry nothing to key on and are always kept.
type ArticleSet struct {
	articles []Article
	index    map[string]int
}

// NewArticleSet returns an empty set.
func NewArticleSet() *ArticleSet {
	return &ArticleSet{index: make(map[string]int)}
}

// Add inserts or replaces the article keyed by its ID. An article with
// an empty ID is appended unconditionally.
func (s *ArticleSet) Add(a Article) {
	if a.ID == "" {
		s.articles = append(s.articles, a)
		return
	}
	if i, seen := s.index[a.ID]; seen {
		s.articles[i] = a
		return
	}
	s.index[a.ID] = len(s.articles)
	s.articles = append(s.articles, a)
}

// AddAll inserts every article in order.
func (s *ArticleSet) AddAll(articles []Article) {
	for _, a := range articles {
		s.Add(a)
	}
}

// Len reports how many articles are stored.
func (s *ArticleSet) Len() int { return len(s.articles) }

// Articles drains the set into a slice in first-insertion order.
func (s *ArticleSet) Articles() []Article {
	out := make([]Article, len(s.articles))
	copy(out, s.articles)
	return out
}
