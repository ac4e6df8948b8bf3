package importer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikbrunner/navmarks/internal/model"
)

// UntitledTitle is used when an imported entry has neither title nor name.
const UntitledTitle = "未命名"

// ErrImportFormat matches every FormatError via errors.Is.
var ErrImportFormat = errors.New("import format error")

// FormatError reports an import document that isn't a JSON array.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid import: %s: %v", e.Reason, e.Err)
	}
	return "invalid import: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrImportFormat }

// FromJSON parses a JSON array of bookmark-like objects. Field names are
// normalized in a fixed order:
//
//	title:      title, name, UntitledTitle
//	url:        url, xmlUrl, ""
//	categories: categories (array), tags (comma-separated string or array), []
//	desc, icon: value or ""
//
// Empty strings and values of the wrong type count as absent. Elements that
// aren't objects are skipped. Every result gets a fresh ID; any id in the
// input is ignored.
func FromJSON(data []byte) ([]model.Bookmark, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Reason: "not valid JSON", Err: err}
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, &FormatError{Reason: "expected a JSON array"}
	}

	bookmarks := make([]model.Bookmark, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		bookmarks = append(bookmarks, normalize(obj))
	}
	return bookmarks, nil
}

// normalize maps one imported object onto a Bookmark.
func normalize(obj map[string]any) model.Bookmark {
	return model.Bookmark{
		ID:         model.GenerateID(),
		Title:      firstString(obj, "title", "name", UntitledTitle),
		URL:        firstString(obj, "url", "xmlUrl", ""),
		Desc:       stringField(obj, "desc"),
		Categories: categoriesField(obj),
		Icon:       stringField(obj, "icon"),
	}
}

func firstString(obj map[string]any, key, alias, fallback string) string {
	if v := stringField(obj, key); v != "" {
		return v
	}
	if v := stringField(obj, alias); v != "" {
		return v
	}
	return fallback
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func categoriesField(obj map[string]any) []string {
	if list, ok := obj["categories"].([]any); ok {
		return stringsOf(list)
	}
	switch tags := obj["tags"].(type) {
	case string:
		return model.ParseCategories(tags)
	case []any:
		return stringsOf(tags)
	}
	return []string{}
}

// stringsOf keeps the string members of list.
func stringsOf(list []any) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
