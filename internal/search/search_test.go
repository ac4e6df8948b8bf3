package search

import (
	"testing"

	"github.com/nikbrunner/navmarks/internal/model"
)

func titled(titles ...string) []model.Bookmark {
	list := make([]model.Bookmark, len(titles))
	for i, title := range titles {
		list[i] = model.Bookmark{ID: model.GenerateID(), Title: title, URL: "https://example.com/" + title}
	}
	return list
}

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub"), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub", "GitLab"), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_FuzzyMatch(t *testing.T) {
	// "tanrou" should fuzzy match "TanStack Router"
	results := FuzzySearchBookmarks(titled("TanStack Router", "React Router"), "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Bookmark.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Bookmark.Title)
	}
	if len(results[0].MatchedIndexes) != len("tanrou") {
		t.Errorf("expected one matched index per query rune, got %v", results[0].MatchedIndexes)
	}
}

func TestFuzzySearchBookmarks_MultipleMatches(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub", "GitLab", "Gitea"), "git")

	if len(results) != 3 {
		t.Errorf("expected 3 results for 'git', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub"), "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results for 'xyz123', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_CaseInsensitive(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub"), "github")

	if len(results) != 1 {
		t.Fatalf("expected 1 result for case-insensitive match, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_SortedByScore(t *testing.T) {
	results := FuzzySearchBookmarks(titled("React Router Documentation", "Router"), "router")

	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	// "Router" should rank higher (exact match) than "React Router Documentation"
	if results[0].Bookmark.Title != "Router" {
		t.Errorf("expected 'Router' as first result (exact match), got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_PointsIntoSlice(t *testing.T) {
	list := titled("GitHub")
	results := FuzzySearchBookmarks(list, "git")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark != &list[0] {
		t.Error("expected result to reference the input slice element")
	}
}
