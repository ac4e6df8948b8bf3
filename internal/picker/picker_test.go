package picker

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/navmarks/internal/model"
	"github.com/nikbrunner/navmarks/internal/search"
)

func gitResults() []search.SearchResult {
	return []search.SearchResult{
		{Bookmark: &model.Bookmark{ID: "b1", Title: "GitHub", URL: "https://github.com", Categories: []string{"开发", "工具"}}},
		{Bookmark: &model.Bookmark{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"}},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(p Picker, msg tea.Msg) (Picker, tea.Cmd) {
	m, cmd := p.Update(msg)
	return m.(Picker), cmd
}

func TestPicker_InitialState(t *testing.T) {
	p := New(gitResults(), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if p.Action() != ActionNone {
		t.Errorf("expected no action, got %v", p.Action())
	}
	if p.SelectedBookmark() != nil {
		t.Error("expected no selection before a choice")
	}
}

func TestPicker_Navigate(t *testing.T) {
	p := New(gitResults(), "git")

	p, _ = update(p, runes("j"))
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after j, got %d", p.cursor)
	}

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Errorf("expected cursor to stay at last item, got %d", p.cursor)
	}

	p, _ = update(p, runes("k"))
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after k, got %d", p.cursor)
	}

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", p.cursor)
	}
}

func TestPicker_Open(t *testing.T) {
	results := gitResults()
	p := New(results, "git")
	p.cursor = 1

	p, cmd := update(p, tea.KeyMsg{Type: tea.KeyEnter})

	if p.Action() != ActionOpen {
		t.Errorf("expected open action, got %v", p.Action())
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	if p.SelectedBookmark() != results[1].Bookmark {
		t.Error("expected GitLab to be selected")
	}
}

func TestPicker_Yank(t *testing.T) {
	p := New(gitResults(), "git")

	p, cmd := update(p, runes("y"))

	if p.Action() != ActionYank {
		t.Errorf("expected yank action, got %v", p.Action())
	}
	if cmd == nil {
		t.Error("expected quit command after yank")
	}
	if got := p.SelectedBookmark(); got == nil || got.ID != "b1" {
		t.Errorf("expected GitHub to be selected, got %+v", got)
	}
}

func TestPicker_Cancel(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}, runes("q")} {
		p := New(gitResults(), "git")

		p, cmd := update(p, msg)

		if !p.Cancelled() {
			t.Errorf("%s: expected cancelled", msg)
		}
		if cmd == nil {
			t.Errorf("%s: expected quit command", msg)
		}
		if p.SelectedBookmark() != nil {
			t.Errorf("%s: expected nil selection", msg)
		}
	}
}

func TestPicker_EnterOnEmptyResults(t *testing.T) {
	p := New(nil, "zzz")

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyEnter})

	if !p.Cancelled() || p.SelectedBookmark() != nil {
		t.Error("expected nothing selected from an empty list")
	}
	if !strings.Contains(p.View(), "No matches") {
		t.Error("expected empty state in view")
	}
}

func TestPicker_ViewShowsCategoriesAndURL(t *testing.T) {
	view := New(gitResults(), "git").View()

	for _, want := range []string{"Search: git (2 results)", "[开发, 工具]", "https://gitlab.com", "Enter: open"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPicker_ScrollsWithCursor(t *testing.T) {
	var results []search.SearchResult
	for i := 0; i < 20; i++ {
		results = append(results, search.SearchResult{
			Bookmark: &model.Bookmark{ID: fmt.Sprint(i), Title: fmt.Sprintf("item-%02d", i), URL: "https://x.com"},
		})
	}

	p := New(results, "item")
	p, _ = update(p, tea.WindowSizeMsg{Width: 80, Height: 11}) // three items fit

	for i := 0; i < 5; i++ {
		p, _ = update(p, runes("j"))
	}

	if p.offset != 3 {
		t.Errorf("expected offset 3, got %d", p.offset)
	}
	view := p.View()
	if !strings.Contains(view, "item-05") || strings.Contains(view, "item-02") {
		t.Errorf("expected window around cursor, got:\n%s", view)
	}
}

func TestHighlight_PlainWithoutMatches(t *testing.T) {
	if got := highlight("GitHub", nil, normalStyle); !strings.Contains(got, "GitHub") {
		t.Errorf("expected title rendered, got %q", got)
	}
}
