package exporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/nikbrunner/navmarks/internal/escape"
	"github.com/nikbrunner/navmarks/internal/model"
)

// DefaultOPMLTitle names the document and its wrapping outline.
const DefaultOPMLTitle = "书签导出"

// isoMillis matches JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// OPMLOptions controls the OPML document head.
type OPMLOptions struct {
	Title string    // defaults to DefaultOPMLTitle
	Now   time.Time // defaults to time.Now()
}

// ToOPML exports the list as an OPML 1.0 document: one wrapping outline
// holding one link outline per bookmark. Categories and description go
// into the _note attribute.
func ToOPML(bookmarks []model.Bookmark, opts OPMLOptions) string {
	title := opts.Title
	if title == "" {
		title = DefaultOPMLTitle
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<opml version="1.0">` + "\n")
	b.WriteString("  <head>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", escape.XML(title))
	fmt.Fprintf(&b, "    <dateCreated>%s</dateCreated>\n", now.UTC().Format(isoMillis))
	b.WriteString("  </head>\n")
	b.WriteString("  <body>\n")
	fmt.Fprintf(&b, "    <outline text=\"%s\">\n", escape.XML(title))

	for _, bm := range bookmarks {
		text := escape.XML(bm.Title)
		fmt.Fprintf(&b,
			"      <outline text=\"%s\" title=\"%s\" type=\"link\" xmlUrl=\"%s\" _note=\"%s\" />\n",
			text,
			text,
			escape.XML(bm.URL),
			escape.XML(opmlNote(bm)),
		)
	}

	b.WriteString("    </outline>\n")
	b.WriteString("  </body>\n")
	b.WriteString("</opml>\n")

	return b.String()
}

// opmlNote renders categories and description as free text.
func opmlNote(bm model.Bookmark) string {
	return fmt.Sprintf("分类:%s 描述:%s", strings.Join(bm.Categories, ", "), bm.Desc)
}
