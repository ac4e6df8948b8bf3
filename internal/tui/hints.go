package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

func hintFor(b key.Binding) Hint {
	h := b.Help()
	return Hint{Key: h.Key, Desc: h.Desc}
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move a:add"
func (a App) renderHints(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, " ")
}

// contextualHints returns the hints for the current mode.
func (a App) contextualHints() []Hint {
	switch a.mode {
	case ModeFilter:
		return []Hint{{"Enter", "keep"}, {"Esc", "clear"}}
	case ModeForm:
		return []Hint{hintFor(a.keys.NextField), hintFor(a.keys.Submit), hintFor(a.keys.Cancel)}
	case ModeConfirmDelete:
		return []Hint{hintFor(a.keys.Confirm), hintFor(a.keys.Deny)}
	case ModeHelp:
		return []Hint{{"any key", "close"}}
	}

	hints := []Hint{
		{"j/k", "move"},
		{"h/l", "category"},
		hintFor(a.keys.Filter),
	}
	if len(a.items) > 0 {
		hints = append(hints,
			hintFor(a.keys.Open),
			hintFor(a.keys.YankURL),
			hintFor(a.keys.Edit),
			hintFor(a.keys.Delete),
		)
	}
	hints = append(hints, hintFor(a.keys.Add), hintFor(a.keys.Help), hintFor(a.keys.Quit))
	return hints
}

// allBindings lists every normal-mode binding for the help overlay.
func (a App) allBindings() []key.Binding {
	return []key.Binding{
		a.keys.Down, a.keys.Up, a.keys.Top, a.keys.Bottom,
		a.keys.NextCategory, a.keys.PrevCategory,
		a.keys.Filter, a.keys.ClearFilter,
		a.keys.Open, a.keys.YankURL,
		a.keys.Add, a.keys.Edit, a.keys.Delete,
		a.keys.Help, a.keys.Quit,
	}
}
