package model

import (
	"net/url"
	"strings"
)

// faviconService is used when a bookmark has no icon of its own.
const faviconService = "https://www.google.com/s2/favicons?domain="

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Desc       string   `json:"desc"`
	Categories []string `json:"categories"`
	Icon       string   `json:"icon"`
}

// Fields holds optional values for creating or updating a Bookmark.
// Nil pointers are "not provided". A nil Categories slice keeps the
// existing categories; an empty non-nil slice clears them.
type Fields struct {
	Title      *string
	URL        *string
	Desc       *string
	Categories []string
	Icon       *string
}

// NewBookmark creates a Bookmark with a generated ID from the given fields.
func NewBookmark(fields Fields) Bookmark {
	b := Bookmark{
		ID:         GenerateID(),
		Categories: []string{},
	}
	fields.applyTo(&b)
	return b
}

// applyTo merges the provided fields over b.
func (f Fields) applyTo(b *Bookmark) {
	if f.Title != nil {
		b.Title = *f.Title
	}
	if f.URL != nil {
		b.URL = *f.URL
	}
	if f.Desc != nil {
		b.Desc = *f.Desc
	}
	if f.Categories != nil {
		b.Categories = append([]string{}, f.Categories...)
	}
	if f.Icon != nil {
		b.Icon = *f.Icon
	}
}

// HasCategory reports whether cat is one of the bookmark's categories.
func (b Bookmark) HasCategory(cat string) bool {
	for _, c := range b.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// IconURL returns the bookmark icon, or a favicon service URL keyed by
// the bookmark's host when no icon is set.
func (b Bookmark) IconURL() string {
	if b.Icon != "" {
		return b.Icon
	}
	u, err := url.Parse(b.URL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return faviconService + u.Hostname()
}

// ParseCategories splits a comma-separated list, trimming whitespace and
// dropping empty entries. Always returns a non-nil slice.
func ParseCategories(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// StringPtr returns a pointer to s, for building Fields.
func StringPtr(s string) *string { return &s }
