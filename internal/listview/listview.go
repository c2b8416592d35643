// Package listview derives the visible page of a collection from a search
// query, a category filter and the current page.
package listview

import (
	"strings"
)

// Query is the user's current filter input. An empty Category matches all.
type Query struct {
	Search   string
	Category string
}

// Matcher extracts the searchable text and the category of a record
type Matcher[T any] struct {
	Text     func(T) string
	Category func(T) string
}

// Filter keeps the items matching q, preserving their order. Matching is a
// case-insensitive substring test on Text plus an exact Category test.
// Search is used as typed, whitespace included.
func Filter[T any](items []T, q Query, m Matcher[T]) []T {
	needle := strings.ToLower(q.Search)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if needle != "" && m.Text != nil && !strings.Contains(strings.ToLower(m.Text(it)), needle) {
			continue
		}
		if q.Category != "" && m.Category != nil && m.Category(it) != q.Category {
			continue
		}
		out = append(out, it)
	}
	return out
}

// PageCount returns ceil(n/size); zero items means zero pages
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Page returns the 1-based page of items. Out-of-range pages are empty.
func Page[T any](items []T, page, size int) []T {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// Projection is what a list view renders
type Projection[T any] struct {
	Rows    []T
	Page    int
	Pages   int
	Total   int // matches before paging
	HasPrev bool
	HasNext bool
}

// View keeps the query and page of one list screen
type View[T any] struct {
	matcher Matcher[T]
	size    int
	query   Query
	page    int
	pages   int
}

// NewView creates a view showing size rows per page
func NewView[T any](m Matcher[T], size int) *View[T] {
	if size <= 0 {
		size = 10
	}
	return &View[T]{matcher: m, size: size, page: 1}
}

// Query returns the active query
func (v *View[T]) Query() Query { return v.query }

// SetQuery changes the filter and goes back to the first page
func (v *View[T]) SetQuery(q Query) {
	v.query = q
	v.page = 1
}

// SetSearch changes only the search text
func (v *View[T]) SetSearch(s string) {
	v.SetQuery(Query{Search: s, Category: v.query.Category})
}

// SetCategory changes only the category
func (v *View[T]) SetCategory(c string) {
	v.SetQuery(Query{Search: v.query.Search, Category: c})
}

// PageSize returns the number of rows per page
func (v *View[T]) PageSize() int { return v.size }

// CurrentPage returns the 1-based page
func (v *View[T]) CurrentPage() int { return v.page }

// Next moves forward one page; it is a no-op on the last page
func (v *View[T]) Next() {
	if v.page < v.pages {
		v.page++
	}
}

// Prev moves back one page; it is a no-op on the first page
func (v *View[T]) Prev() {
	if v.page > 1 {
		v.page--
	}
}

// Project filters and pages items. The page is clamped when the filtered
// collection shrank below it.
func (v *View[T]) Project(items []T) Projection[T] {
	matched := Filter(items, v.query, v.matcher)
	v.pages = PageCount(len(matched), v.size)
	if v.page > v.pages {
		v.page = max(v.pages, 1)
	}
	return Projection[T]{
		Rows:    Page(matched, v.page, v.size),
		Page:    v.page,
		Pages:   v.pages,
		Total:   len(matched),
		HasPrev: v.page > 1,
		HasNext: v.page < v.pages,
	}
}
