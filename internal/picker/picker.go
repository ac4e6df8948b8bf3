// Package picker is a small full-screen list for choosing one fuzzy
// search result, used by `bm search`.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/navmarks/internal/model"
	"github.com/nikbrunner/navmarks/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("108"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Action is what the user chose to do with the selection.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionYank
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Yank   key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("j", "down")),
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "open")),
	Yank:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("q/Esc", "cancel")),
}

// linesPerItem is the height of one result: title row plus URL row.
const linesPerItem = 2

// Picker selects from search results.
type Picker struct {
	results []search.SearchResult
	query   string
	cursor  int
	offset  int
	action  Action
	width   int
	height  int
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.scroll()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.action = ActionNone
			return p, tea.Quit

		case key.Matches(msg, keys.Open):
			if len(p.results) > 0 {
				p.action = ActionOpen
			}
			return p, tea.Quit

		case key.Matches(msg, keys.Yank):
			if len(p.results) > 0 {
				p.action = ActionYank
			}
			return p, tea.Quit

		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			p.scroll()
			return p, nil

		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			p.scroll()
			return p, nil
		}
	}

	return p, nil
}

// visibleItems is how many results fit between header and footer.
func (p Picker) visibleItems() int {
	return max(1, (p.height-5)/linesPerItem)
}

// scroll keeps the cursor inside the visible window.
func (p *Picker) scroll() {
	n := p.visibleItems()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+n {
		p.offset = p.cursor - n + 1
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	if len(p.results) == 0 {
		b.WriteString(hintStyle.Render("  No matches"))
		b.WriteString("\n")
	}

	end := min(len(p.results), p.offset+p.visibleItems())
	for i := p.offset; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		line := cursor + highlight(result.Bookmark.Title, result.MatchedIndexes, style)
		if len(result.Bookmark.Categories) > 0 {
			line += "  " + categoryStyle.Render("["+strings.Join(result.Bookmark.Categories, ", ")+"]")
		}
		b.WriteString(line + "\n")
		b.WriteString("   " + urlStyle.Render(result.Bookmark.URL) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(helpLine()))

	return b.String()
}

func helpLine() string {
	bindings := []key.Binding{keys.Down, keys.Up, keys.Open, keys.Yank, keys.Cancel}
	parts := make([]string, len(bindings))
	for i, kb := range bindings {
		h := kb.Help()
		parts[i] = h.Key + ": " + h.Desc
	}
	return strings.Join(parts, "  ")
}

// highlight renders title with the matched positions emphasized. Positions
// are byte offsets into title.
func highlight(title string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(title)
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(matchStyle.Inherit(base).Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedBookmark returns the selected bookmark, or nil if cancelled.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.action == ActionNone {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Bookmark
	}
	return nil
}

// Action returns what the user chose, ActionNone if cancelled.
func (p Picker) Action() Action {
	return p.action
}

// Cancelled returns true if the user quit without choosing.
func (p Picker) Cancelled() bool {
	return p.action == ActionNone
}
