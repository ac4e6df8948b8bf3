package importer_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nikbrunner/navmarks/internal/exporter"
	"github.com/nikbrunner/navmarks/internal/importer"
	"github.com/nikbrunner/navmarks/internal/model"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}

	b := bookmarks[0]
	if b.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", b.Title)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if len(b.Categories) != 0 || b.Categories == nil {
		t.Errorf("expected empty non-nil categories, got %#v", b.Categories)
	}
	if b.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestParseHTML_FoldersBecomeCategories(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookmarks) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(bookmarks))
	}

	want := map[string][]string{
		"React Docs": {"Development", "React"},
		"GitHub":     {"Development"},
		"Google":     {},
	}
	for _, b := range bookmarks {
		if !reflect.DeepEqual(b.Categories, want[b.Title]) {
			t.Errorf("%s: categories = %v, want %v", b.Title, b.Categories, want[b.Title])
		}
	}
}

func TestParseHTML_TagsDescriptionAndIcon(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Tools</H3>
    <DL><p>
        <DT><A HREF="https://go.dev" TAGS="golang, Tools,docs" ICON_URI="https://go.dev/favicon.ico">Go</A>
        <DD>The Go language
        <DT><A HREF="https://inline.example" ICON="data:image/png;base64,AAAA" ICON_URI="data:image/png;base64,AAAA">Inline</A>
    </DL><p>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}

	g := bookmarks[0]
	if !reflect.DeepEqual(g.Categories, []string{"Tools", "golang", "docs"}) {
		t.Errorf("unexpected categories %v", g.Categories)
	}
	if g.Desc != "The Go language" {
		t.Errorf("expected description, got %q", g.Desc)
	}
	if g.Icon != "https://go.dev/favicon.ico" {
		t.Errorf("expected icon URL, got %q", g.Icon)
	}

	inline := bookmarks[1]
	if inline.Icon != "" {
		t.Errorf("expected data URI icon to be dropped, got %q", inline.Icon)
	}
	if inline.Desc != "" {
		t.Errorf("expected no description, got %q", inline.Desc)
	}
}

func TestParseHTML_SkipsMissingHref(t *testing.T) {
	html := `<DL><p>
    <DT><A>No URL</A>
    <DT><A HREF="">Empty URL</A>
    <DT><A HREF="https://valid.com">Valid</A>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}
	if bookmarks[0].URL != "https://valid.com" {
		t.Errorf("unexpected bookmark %+v", bookmarks[0])
	}
}

func TestParseHTML_TitleFallsBackToURL(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="https://untitled.com"></A>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookmarks) != 1 || bookmarks[0].Title != "https://untitled.com" {
		t.Errorf("expected URL as title, got %+v", bookmarks)
	}
}

func TestParseHTML_Empty(t *testing.T) {
	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 0 {
		t.Errorf("expected no bookmarks, got %d", len(bookmarks))
	}
}

func TestParseHTML_ExportRoundTrip(t *testing.T) {
	list := []model.Bookmark{
		{ID: "1", Title: "A & B", URL: "https://a.com/?x=1&y=2", Desc: "first <one>", Categories: []string{"工具", "搜索"}, Icon: "https://a.com/i.png"},
		{ID: "2", Title: "Plain", URL: "https://plain.com", Categories: []string{}},
	}

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(exporter.ExportHTML(list)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != len(list) {
		t.Fatalf("expected %d bookmarks, got %d", len(list), len(bookmarks))
	}

	for i := range list {
		want := list[i]
		want.ID = bookmarks[i].ID
		if !reflect.DeepEqual(bookmarks[i], want) {
			t.Errorf("item %d: got %+v, want %+v", i, bookmarks[i], want)
		}
	}
}
