package tui_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/navmarks/internal/model"
	"github.com/nikbrunner/navmarks/internal/session"
	"github.com/nikbrunner/navmarks/internal/storage"
	"github.com/nikbrunner/navmarks/internal/tui"
)

func testBookmarks() []model.Bookmark {
	return []model.Bookmark{
		{ID: "bm-1", Title: "GitHub", URL: "https://github.com", Desc: "code hosting", Categories: []string{"dev", "tools"}},
		{ID: "bm-2", Title: "Go Docs", URL: "https://go.dev", Categories: []string{"dev"}},
		{ID: "bm-3", Title: "Hacker News", URL: "https://news.ycombinator.com", Categories: []string{"news"}},
	}
}

// newTestSession returns an initialized session on a memory slot.
func newTestSession(t *testing.T, list []model.Bookmark) (*session.Session, *storage.MemorySlot) {
	t.Helper()
	slot := storage.NewMemorySlot()
	st := storage.NewStorage(slot, nil)
	assert.NilError(t, st.Save(context.Background(), list))

	s := session.New(st, nil)
	s.Init(context.Background())
	return s, slot
}

type fakeClipboard struct{ last string }

func (c *fakeClipboard) WriteAll(s string) error {
	c.last = s
	return nil
}

func newTestApp(t *testing.T) (tui.App, *session.Session, *storage.MemorySlot) {
	t.Helper()
	s, slot := newTestSession(t, testBookmarks())
	clip := &fakeClipboard{}
	app := tui.NewApp(tui.AppParams{Session: s, CopyToClipboard: clip.WriteAll})
	return app.WithDimensions(100, 30), s, slot
}

func press(app tui.App, keys ...string) tui.App {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := app.Update(msg)
		app = updated.(tui.App)
	}
	return app
}

func titles(list []model.Bookmark) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Title
	}
	return out
}

func TestApp_InitialState(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Cursor(), 0)
	assert.Equal(t, app.ActiveCategory(), "")
	assert.DeepEqual(t, titles(app.Items()), []string{"GitHub", "Go Docs", "Hacker News"})
}

func TestApp_Navigation(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = press(app, "j")
	assert.Equal(t, app.Cursor(), 1)

	app = press(app, "j", "j", "j")
	assert.Equal(t, app.Cursor(), 2, "j at bottom should stay")

	app = press(app, "g", "g")
	assert.Equal(t, app.Cursor(), 0)

	app = press(app, "G")
	assert.Equal(t, app.Cursor(), 2)

	app = press(app, "k")
	assert.Equal(t, app.Cursor(), 1)
}

func TestApp_CategoryCycling(t *testing.T) {
	app, _, _ := newTestApp(t)

	// categories sort as dev, news, tools
	app = press(app, "l")
	assert.Equal(t, app.ActiveCategory(), "dev")
	assert.DeepEqual(t, titles(app.Items()), []string{"GitHub", "Go Docs"})

	app = press(app, "l")
	assert.Equal(t, app.ActiveCategory(), "news")
	assert.DeepEqual(t, titles(app.Items()), []string{"Hacker News"})

	app = press(app, "l", "l")
	assert.Equal(t, app.ActiveCategory(), "", "wraps back to all")
	assert.Assert(t, is.Len(app.Items(), 3))

	app = press(app, "h")
	assert.Equal(t, app.ActiveCategory(), "tools")
}

func TestApp_FilterIsLiveAndComposesWithCategory(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = press(app, "/")
	assert.Equal(t, app.Mode(), tui.ModeFilter)

	app = press(app, "C", "O", "D", "E")
	assert.Equal(t, app.Query(), "CODE")
	assert.DeepEqual(t, titles(app.Items()), []string{"GitHub"})

	app = press(app, "enter")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Query(), "CODE", "enter keeps the query")

	app = press(app, "l", "l") // news
	assert.Assert(t, is.Len(app.Items(), 0))
	assert.Assert(t, is.Contains(app.View(), `No matches for "CODE"`))

	app = press(app, "esc")
	assert.Equal(t, app.Query(), "")
	assert.DeepEqual(t, titles(app.Items()), []string{"Hacker News"})
}

func TestApp_AddBookmark(t *testing.T) {
	app, s, _ := newTestApp(t)

	app = press(app, "a")
	assert.Equal(t, app.Mode(), tui.ModeForm)
	assert.Assert(t, !app.Form().Editing())

	app = press(app, "Lobsters", "tab", "https://lobste.rs", "tab", "tab", "news, links", "enter")

	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Assert(t, is.Contains(app.Message(), "Added Lobsters"))

	list := s.Bookmarks()
	assert.Assert(t, is.Len(list, 4))
	assert.Equal(t, list[0].Title, "Lobsters")
	assert.Equal(t, list[0].URL, "https://lobste.rs")
	assert.DeepEqual(t, list[0].Categories, []string{"news", "links"})
	assert.Equal(t, app.Items()[0].ID, list[0].ID)
}

func TestApp_AddRequiresURL(t *testing.T) {
	app, s, _ := newTestApp(t)

	app = press(app, "a", "No URL", "enter")

	assert.Equal(t, app.Mode(), tui.ModeForm)
	assert.Equal(t, app.Form().Err, "URL is required")
	assert.Assert(t, is.Len(s.Bookmarks(), 3))

	app = press(app, "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
}

func TestApp_AddSaveFailureKeepsForm(t *testing.T) {
	app, s, slot := newTestApp(t)
	slot.SetErr = errors.New("disk full")

	app = press(app, "a", "tab", "https://x.com", "enter")

	assert.Equal(t, app.Mode(), tui.ModeForm)
	assert.Assert(t, is.Contains(app.Form().Err, "disk full"))
	assert.Assert(t, is.Len(s.Bookmarks(), 3))
}

func TestApp_EditBookmark(t *testing.T) {
	app, s, _ := newTestApp(t)

	app = press(app, "j", "e")
	assert.Equal(t, app.Mode(), tui.ModeForm)
	assert.Assert(t, app.Form().Editing())
	assert.Equal(t, app.Form().Value(tui.FieldTitle), "Go Docs")
	assert.Equal(t, app.Form().Value(tui.FieldCategories), "dev")

	app = press(app, " Home", "enter")

	b, ok := s.Get("bm-2")
	assert.Assert(t, ok)
	assert.Equal(t, b.Title, "Go Docs Home")
	assert.Equal(t, b.URL, "https://go.dev")
	assert.DeepEqual(t, b.Categories, []string{"dev"})
	assert.Equal(t, app.Mode(), tui.ModeNormal)
}

func TestApp_DeleteWithConfirm(t *testing.T) {
	app, s, _ := newTestApp(t)

	app = press(app, "d")
	assert.Equal(t, app.Mode(), tui.ModeConfirmDelete)
	assert.Assert(t, is.Contains(app.View(), "Delete bookmark?"))

	app = press(app, "n")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Assert(t, is.Len(s.Bookmarks(), 3))

	app = press(app, "d", "y")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Assert(t, is.Len(s.Bookmarks(), 2))
	_, found := s.Get("bm-1")
	assert.Assert(t, !found)
	assert.DeepEqual(t, titles(app.Items()), []string{"Go Docs", "Hacker News"})
}

func TestApp_DeleteLastInCategoryFallsBackToAll(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = press(app, "l", "l") // news
	assert.Equal(t, app.ActiveCategory(), "news")

	app = press(app, "d", "y")
	assert.Equal(t, app.ActiveCategory(), "")
	assert.Assert(t, is.Len(app.Items(), 2))
}

func TestApp_YankURL(t *testing.T) {
	s, _ := newTestSession(t, testBookmarks())
	clip := &fakeClipboard{}
	app := tui.NewApp(tui.AppParams{Session: s, CopyToClipboard: clip.WriteAll})

	app = press(app, "j", "y")

	assert.Equal(t, clip.last, "https://go.dev")
	assert.Assert(t, is.Contains(app.Message(), "Copied https://go.dev"))
}

func TestApp_OpenURL(t *testing.T) {
	s, _ := newTestSession(t, testBookmarks())
	var opened []string
	app := tui.NewApp(tui.AppParams{
		Session:         s,
		CopyToClipboard: func(string) error { return nil },
		OpenURL: func(url string) error {
			opened = append(opened, url)
			return nil
		},
	})

	app = press(app, "G", "enter")
	assert.DeepEqual(t, opened, []string{"https://news.ycombinator.com"})

	failing := tui.NewApp(tui.AppParams{
		Session:         s,
		CopyToClipboard: func(string) error { return nil },
		OpenURL:         func(string) error { return errors.New("no browser") },
	})
	failing = press(failing, "enter")
	assert.Assert(t, is.Contains(failing.Message(), "no browser"))
}

func TestApp_HelpOverlay(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = press(app, "?")
	assert.Equal(t, app.Mode(), tui.ModeHelp)
	assert.Assert(t, is.Contains(app.View(), "yank URL"))

	app = press(app, "x")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
}

func TestApp_QuitReturnsCommand(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Assert(t, cmd != nil)
}

func TestView_SidebarAndList(t *testing.T) {
	app, _, _ := newTestApp(t)
	view := app.View()

	for _, want := range []string{
		tui.AllCategoriesLabel + " (3)",
		"dev (2)",
		"news (1)",
		"tools (1)",
		"GitHub",
		"https://go.dev",
		"code hosting",
	} {
		assert.Assert(t, is.Contains(view, want))
	}
}

func TestView_EmptyStore(t *testing.T) {
	s, _ := newTestSession(t, []model.Bookmark{})
	app := tui.NewApp(tui.AppParams{Session: s, CopyToClipboard: func(string) error { return nil }})

	view := app.WithDimensions(80, 24).View()
	assert.Assert(t, is.Contains(view, "No bookmarks yet"))
	assert.Assert(t, !strings.Contains(view, "Enter:open"))
}
