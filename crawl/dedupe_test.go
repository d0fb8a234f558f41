package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArticleSet_LastWriteWins verifies that a colliding ID keeps the
// most recently added value.
func TestArticleSet_LastWriteWins(t *testing.T) {
	set := NewArticleSet()
	set.AddAll([]Article{{ID: "123", Title: "first title"}})
	set.AddAll([]Article{{ID: "123", Title: "second title"}})

	articles := set.Articles()

	require.Len(t, articles, 1)
	assert.Equal(t, "second title", articles[0].Title)
}

// TestArticleSet_KeepsInsertionOrder verifies that draining preserves
// the order IDs first appeared in, even across replacements.
func TestArticleSet_KeepsInsertionOrder(t *testing.T) {
	set := NewArticleSet()
	set.Add(Article{ID: "a", Title: "A"})
	set.Add(Article{ID: "b", Title: "B"})
	set.Add(Article{ID: "a", Title: "A2"})
	set.Add(Article{ID: "c", Title: "C"})

	articles := set.Articles()

	require.Equal(t, 3, set.Len())
	assert.Equal(t, "a", articles[0].ID)
	assert.Equal(t, "A2", articles[0].Title)
	assert.Equal(t, "b", articles[1].ID)
	assert.Equal(t, "c", articles[2].ID)
}

// TestArticleSet_KeepsArticlesWithoutID verifies that articles whose
// URLs yielded no ID are all kept instead of colliding on the empty
// key.
func TestArticleSet_KeepsArticlesWithoutID(t *testing.T) {
	set := NewArticleSet()
	set.AddAll([]Article{
		{URL: "https://example.com/chuyen-trang-a", Title: "A"},
		{ID: "1", Title: "One"},
		{URL: "https://example.com/chuyen-trang-b", Title: "B"},
	})

	articles := set.Articles()

	require.Equal(t, 3, set.Len())
	assert.Equal(t, "A", articles[0].Title)
	assert.Equal(t, "One", articles[1].Title)
	assert.Equal(t, "B", articles[2].Title)
}

// TestArticleSet_Empty verifies draining an empty set.
func TestArticleSet_Empty(t *testing.T) {
	set := NewArticleSet()
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Articles())
}
