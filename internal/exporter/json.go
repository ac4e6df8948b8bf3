package exporter

import (
	"bytes"
	"encoding/json"

	"github.com/nikbrunner/navmarks/internal/model"
)

// ToJSON serializes the list with two-space indentation, using the same
// shape the list is stored in. Characters like & and < are written as is.
func ToJSON(bookmarks []model.Bookmark) (string, error) {
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bookmarks); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
