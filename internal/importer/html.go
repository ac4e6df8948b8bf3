package importer

import (
	"io"
	"strings"

	"github.com/nikbrunner/navmarks/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses a Netscape bookmark HTML file into a flat list.
// The names of the folders enclosing a bookmark become its categories,
// followed by any TAGS not already present. A <DD> directly after a
// bookmark becomes its description.
func ParseHTMLBookmarks(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	var folderStack []string // names of enclosing folders, outermost first
	var pendingFolder *string
	lastBookmark := -1 // index of the bookmark a following <DD> describes

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition, pushed when its DL starts
				lastBookmark = -1
				if name := getTextContent(n); name != "" {
					pendingFolder = &name
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					lastBookmark = -1
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				bookmarks = append(bookmarks, model.Bookmark{
					ID:         model.GenerateID(),
					Title:      title,
					URL:        href,
					Categories: bookmarkCategories(folderStack, getAttr(n, "tags")),
					Icon:       iconAttr(n),
				})
				lastBookmark = len(bookmarks) - 1
				return

			case "dd":
				if lastBookmark >= 0 {
					bookmarks[lastBookmark].Desc = getOwnText(n)
					lastBookmark = -1
				}

			case "dl":
				lastBookmark = -1
				pushedFolder := false
				if pendingFolder != nil {
					folderStack = append(folderStack, *pendingFolder)
					pendingFolder = nil
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// bookmarkCategories combines folder names with the TAGS attribute.
func bookmarkCategories(folders []string, tags string) []string {
	categories := append([]string{}, folders...)
	for _, tag := range model.ParseCategories(tags) {
		if !contains(categories, tag) {
			categories = append(categories, tag)
		}
	}
	return categories
}

// iconAttr returns ICON_URI when it is a URL. ICON usually carries an
// inline data: URI, which is too large to keep.
func iconAttr(n *html.Node) string {
	icon := getAttr(n, "icon_uri")
	if strings.HasPrefix(icon, "http://") || strings.HasPrefix(icon, "https://") {
		return icon
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getOwnText returns only the direct text children of a node.
func getOwnText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
