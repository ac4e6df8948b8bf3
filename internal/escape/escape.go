// Package escape makes strings safe for embedding in HTML and XML output.
package escape

import "strings"

var (
	htmlReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	xmlReplacer = strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		"&", "&amp;",
		"'", "&apos;",
		`"`, "&quot;",
	)
)

// HTML escapes & < > " and ' for HTML text and attribute values.
func HTML(s string) string {
	return htmlReplacer.Replace(s)
}

// XML escapes < > & ' and " using the predefined XML entities.
func XML(s string) string {
	return xmlReplacer.Replace(s)
}
