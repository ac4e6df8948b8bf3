package model

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateID is returned when inserting a bookmark whose ID is already in the store.
var ErrDuplicateID = errors.New("duplicate bookmark id")

// Store holds the bookmark list. New and imported bookmarks go to the front.
type Store struct {
	Bookmarks []Bookmark
}

// CategoryCount pairs a category with the number of bookmarks carrying it.
type CategoryCount struct {
	Name  string
	Count int
}

// NewStore creates a Store holding the given bookmarks.
func NewStore(bookmarks ...Bookmark) *Store {
	list := make([]Bookmark, 0, len(bookmarks))
	list = append(list, bookmarks...)
	return &Store{Bookmarks: list}
}

// Snapshot returns a copy of the bookmark list.
func (s *Store) Snapshot() []Bookmark {
	out := make([]Bookmark, len(s.Bookmarks))
	copy(out, s.Bookmarks)
	return out
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id string) *Bookmark {
	if i := s.indexOf(id); i >= 0 {
		return &s.Bookmarks[i]
	}
	return nil
}

// HasBookmarkURL reports whether any bookmark points at url.
func (s *Store) HasBookmarkURL(url string) bool {
	for _, b := range s.Bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

func (s *Store) indexOf(id string) int {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return i
		}
	}
	return -1
}

// Insert prepends a prebuilt bookmark.
func (s *Store) Insert(b Bookmark) error {
	if b.ID == "" {
		return errors.New("bookmark id required")
	}
	if s.indexOf(b.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	s.Bookmarks = append([]Bookmark{b}, s.Bookmarks...)
	return nil
}

// Add creates a bookmark from fields and prepends it.
func (s *Store) Add(fields Fields) (Bookmark, error) {
	b := NewBookmark(fields)
	if err := s.Insert(b); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// Update merges fields over the bookmark with the given ID.
// Returns false if no such bookmark exists.
func (s *Store) Update(id string, fields Fields) bool {
	b := s.GetBookmarkByID(id)
	if b == nil {
		return false
	}
	fields.applyTo(b)
	return true
}

// Remove deletes the bookmark with the given ID.
// Returns false if no such bookmark exists.
func (s *Store) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.Bookmarks = append(s.Bookmarks[:i:i], s.Bookmarks[i+1:]...)
	return true
}

// ImportMerge prepends imported bookmarks whose URL is non-empty and not
// already present before the merge, keeping their relative order. A URL
// repeated inside the batch is added each time. Imported bookmarks whose ID
// clashes with one already in the store get a fresh ID.
func (s *Store) ImportMerge(imported []Bookmark) (added, skipped int) {
	seenURLs := make(map[string]bool, len(s.Bookmarks))
	seenIDs := make(map[string]bool, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		seenURLs[b.URL] = true
		seenIDs[b.ID] = true
	}

	var toAdd []Bookmark
	for _, b := range imported {
		if b.URL == "" || seenURLs[b.URL] {
			skipped++
			continue
		}

		for b.ID == "" || seenIDs[b.ID] {
			b.ID = GenerateID()
		}
		seenIDs[b.ID] = true

		if b.Categories == nil {
			b.Categories = []string{}
		}
		toAdd = append(toAdd, b)
	}

	if len(toAdd) > 0 {
		s.Bookmarks = append(toAdd, s.Bookmarks...)
	}
	return len(toAdd), skipped
}

// Categories returns every distinct category, sorted ascending.
func (s *Store) Categories() []string {
	set := make(map[string]bool)
	for _, b := range s.Bookmarks {
		for _, c := range b.Categories {
			set[c] = true
		}
	}

	cats := make([]string, 0, len(set))
	for c := range set {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// CountInCategory counts bookmarks carrying cat (exact match).
func (s *Store) CountInCategory(cat string) int {
	n := 0
	for _, b := range s.Bookmarks {
		if b.HasCategory(cat) {
			n++
		}
	}
	return n
}

// CategoryCounts returns Categories paired with CountInCategory.
func (s *Store) CategoryCounts() []CategoryCount {
	cats := s.Categories()
	counts := make([]CategoryCount, len(cats))
	for i, c := range cats {
		counts[i] = CategoryCount{Name: c, Count: s.CountInCategory(c)}
	}
	return counts
}
