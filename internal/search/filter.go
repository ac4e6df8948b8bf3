package search

import (
	"strings"

	"github.com/nikbrunner/navmarks/internal/model"
)

// Filter keeps bookmarks carrying category (exact match, skipped when
// empty) whose title, description and categories contain query
// case-insensitively (skipped when blank). Order is preserved.
func Filter(bookmarks []model.Bookmark, category, query string) []model.Bookmark {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if category != "" && !b.HasCategory(category) {
			continue
		}
		if q != "" && !strings.Contains(haystack(b), q) {
			continue
		}
		result = append(result, b)
	}
	return result
}

// haystack is the lower-cased text a query is matched against.
func haystack(b model.Bookmark) string {
	return strings.ToLower(b.Title + " " + b.Desc + " " + strings.Join(b.Categories, " "))
}
