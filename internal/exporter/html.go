package exporter

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/navmarks/internal/escape"
	"github.com/nikbrunner/navmarks/internal/model"
)

// ExportHTML exports the list to Netscape bookmark HTML format.
// Categories are written to the TAGS attribute, descriptions to <DD>.
func ExportHTML(bookmarks []model.Bookmark) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, bm := range bookmarks {
		fmt.Fprintf(&b, "    <DT><A HREF=\"%s\"", escape.HTML(bm.URL))
		if bm.Icon != "" {
			fmt.Fprintf(&b, " ICON_URI=\"%s\"", escape.HTML(bm.Icon))
		}
		if len(bm.Categories) > 0 {
			fmt.Fprintf(&b, " TAGS=\"%s\"", escape.HTML(strings.Join(bm.Categories, ",")))
		}
		fmt.Fprintf(&b, ">%s</A>\n", escape.HTML(bm.Title))
		if bm.Desc != "" {
			fmt.Fprintf(&b, "    <DD>%s\n", escape.HTML(bm.Desc))
		}
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}
