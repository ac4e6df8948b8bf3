package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerLines   = 2 // title and search line
	helpBarLines  = 2 // message and hints
	paneChrome    = 2 // top and bottom border
	linesPerItem  = 2 // title row and URL row
	sidebarMinW   = 16
	sidebarMaxW   = 28
	modalMaxWidth = 72
)

// bodyHeight is the inner height of the two panes.
func (a App) bodyHeight() int {
	return max(1, a.height-headerLines-helpBarLines-paneChrome)
}

func (a App) visibleItems() int {
	return max(1, a.bodyHeight()/linesPerItem)
}

// scroll keeps the cursor inside the visible window.
func (a *App) scroll() {
	n := a.visibleItems()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+n {
		a.offset = a.cursor - n + 1
	}
	if a.offset > max(0, len(a.items)-n) {
		a.offset = max(0, len(a.items)-n)
	}
}

func (a App) renderView() string {
	switch a.mode {
	case ModeForm:
		return a.renderModal(a.renderForm())
	case ModeConfirmDelete:
		return a.renderModal(a.renderConfirmDelete())
	case ModeHelp:
		return a.renderModal(a.renderHelpOverlay())
	}

	sideW := min(sidebarMaxW, max(sidebarMinW, a.width/4))
	// Pane borders and padding take four columns each
	listW := max(10, a.width-sideW-8-2)
	h := a.bodyHeight()

	sidebar := a.styles.Pane.
		Width(sideW).
		Height(h).
		Render(a.renderSidebar(sideW))

	list := a.styles.PaneActive.
		Width(listW).
		Height(h).
		Render(a.renderList(listW))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, list)

	return a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.renderSearchLine(),
		body,
		a.renderHelpBar(),
	))
}

func (a App) renderHeader() string {
	total := len(a.session.Bookmarks())
	header := a.styles.Title.Render("navmarks")
	count := a.styles.Count.Render(fmt.Sprintf("  %d/%d", len(a.items), total))
	return header + count
}

func (a App) renderSearchLine() string {
	if a.mode == ModeFilter {
		return a.filter.View()
	}
	if a.query != "" {
		return a.styles.Info.Render("/ " + a.query)
	}
	return ""
}

func (a App) renderSidebar(width int) string {
	var b strings.Builder

	entries := make([]string, 0, len(a.categories)+1)
	entries = append(entries, a.renderCategory(AllCategoriesLabel, len(a.session.Bookmarks()), a.categoryIdx == 0, width))
	for i, c := range a.categories {
		entries = append(entries, a.renderCategory(c.Name, c.Count, a.categoryIdx == i+1, width))
	}

	// Keep the active category visible
	h := a.bodyHeight()
	start := 0
	if a.categoryIdx >= h {
		start = a.categoryIdx - h + 1
	}
	end := min(len(entries), start+h)
	b.WriteString(strings.Join(entries[start:end], "\n"))

	return b.String()
}

func (a App) renderCategory(name string, count int, active bool, width int) string {
	style := a.styles.Category
	marker := "  "
	if active {
		style = a.styles.CategoryOn
		marker = "▸ "
	}
	line := marker + style.Render(name) + a.styles.Count.Render(fmt.Sprintf(" (%d)", count))
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func (a App) renderList(width int) string {
	if len(a.items) == 0 {
		msg := "No bookmarks yet. Press a to add one."
		if a.query != "" {
			msg = fmt.Sprintf("No matches for %q", a.query)
		} else if a.ActiveCategory() != "" {
			msg = "No bookmarks in " + a.ActiveCategory()
		}
		return a.styles.Empty.Render(msg)
	}

	lines := make([]string, 0, a.visibleItems()*linesPerItem)
	end := min(len(a.items), a.offset+a.visibleItems())
	for i := a.offset; i < end; i++ {
		lines = append(lines, a.renderItem(i, width)...)
	}
	return strings.Join(lines, "\n")
}

// renderItem renders bookmark i as a title row and a URL row.
func (a App) renderItem(i, width int) []string {
	bm := a.items[i]
	clip := lipgloss.NewStyle().MaxWidth(width)

	titleStyle := a.styles.Item
	if i == a.cursor {
		titleStyle = a.styles.ItemSelected
	}

	title := titleStyle.Render(bm.Title)
	if len(bm.Categories) > 0 {
		title += " " + a.styles.Tag.Render("#"+strings.Join(bm.Categories, " #"))
	}

	detail := "  " + a.styles.URL.Render(bm.URL)
	if bm.Desc != "" {
		detail += a.styles.Desc.Render("  " + bm.Desc)
	}

	return []string{clip.Render(title), clip.Render(detail)}
}

func (a App) renderHelpBar() string {
	var message string
	if a.messageText != "" {
		message = a.renderMessageLine()
	}
	return message + "\n" + a.renderHints(a.contextualHints())
}

// renderMessageLine renders the styled message with a prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.Info.Render(a.messageText)
	}
}

func (a App) renderModal(content string) string {
	modal := a.styles.Modal.
		MaxWidth(min(modalMaxWidth, a.width)).
		Render(content)

	placed := lipgloss.Place(
		a.width,
		max(1, a.height-helpBarLines),
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
	return lipgloss.JoinVertical(lipgloss.Left, placed, a.renderHelpBar())
}

func (a App) renderForm() string {
	var b strings.Builder

	title := "Add bookmark"
	if a.form.Editing() {
		title = "Edit bookmark"
	}
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, in := range a.form.Inputs {
		label := fieldLabels[i]
		if i == a.form.Focus {
			label = "› " + label
		} else {
			label = "  " + label
		}
		b.WriteString(a.styles.Label.Render(label) + " " + in.View() + "\n")
	}

	if a.form.Err != "" {
		b.WriteString("\n" + a.styles.Error.Render(a.form.Err))
	}
	return b.String()
}

func (a App) renderConfirmDelete() string {
	b := a.selected()
	if b == nil {
		return ""
	}
	return a.styles.Title.Render("Delete bookmark?") + "\n\n" +
		a.styles.Item.Render(b.Title) + "\n" +
		a.styles.URL.Render(b.URL)
}

func (a App) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, kb := range a.allBindings() {
		h := kb.Help()
		b.WriteString(a.styles.Label.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc) + "\n")
	}
	return b.String()
}
