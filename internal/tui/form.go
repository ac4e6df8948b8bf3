package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/navmarks/internal/model"
)

// Form field order.
const (
	FieldTitle = iota
	FieldURL
	FieldDesc
	FieldCategories
	FieldIcon
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldTitle:      "Title",
	FieldURL:        "URL",
	FieldDesc:       "Description",
	FieldCategories: "Categories",
	FieldIcon:       "Icon",
}

// FormState holds the add/edit bookmark form.
type FormState struct {
	Inputs    [fieldCount]textinput.Model
	Focus     int
	EditingID string // empty when adding
	Err       string
}

// NewFormState creates an empty form.
func NewFormState() FormState {
	var f FormState
	placeholders := [fieldCount]string{
		FieldTitle:      "Bookmark title",
		FieldURL:        "https://...",
		FieldDesc:       "Optional description",
		FieldCategories: "tools, search",
		FieldIcon:       "Favicon URL (optional)",
	}
	for i := range f.Inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 2048
		in.Width = 48
		f.Inputs[i] = in
	}
	return f
}

// Open prepares the form for adding (b == nil) or editing b.
func (f *FormState) Open(b *model.Bookmark) tea.Cmd {
	f.Err = ""
	f.EditingID = ""
	for i := range f.Inputs {
		f.Inputs[i].Reset()
	}
	if b != nil {
		f.EditingID = b.ID
		f.Inputs[FieldTitle].SetValue(b.Title)
		f.Inputs[FieldURL].SetValue(b.URL)
		f.Inputs[FieldDesc].SetValue(b.Desc)
		f.Inputs[FieldCategories].SetValue(strings.Join(b.Categories, ", "))
		f.Inputs[FieldIcon].SetValue(b.Icon)
	}
	return f.focus(FieldTitle)
}

// Editing reports whether the form edits an existing bookmark.
func (f FormState) Editing() bool {
	return f.EditingID != ""
}

func (f *FormState) focus(i int) tea.Cmd {
	f.Focus = (i + fieldCount) % fieldCount
	for j := range f.Inputs {
		f.Inputs[j].Blur()
	}
	return f.Inputs[f.Focus].Focus()
}

// Next moves focus to the following field, wrapping around.
func (f *FormState) Next() tea.Cmd { return f.focus(f.Focus + 1) }

// Prev moves focus to the previous field, wrapping around.
func (f *FormState) Prev() tea.Cmd { return f.focus(f.Focus - 1) }

// Update forwards msg to the focused input.
func (f *FormState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.Inputs[f.Focus], cmd = f.Inputs[f.Focus].Update(msg)
	return cmd
}

// Value returns the trimmed value of field i.
func (f FormState) Value(i int) string {
	return strings.TrimSpace(f.Inputs[i].Value())
}

// Fields converts the form to model.Fields. The URL is required; an empty
// title falls back to the URL.
func (f *FormState) Fields() (model.Fields, bool) {
	url := f.Value(FieldURL)
	if url == "" {
		f.Err = "URL is required"
		return model.Fields{}, false
	}
	title := f.Value(FieldTitle)
	if title == "" {
		title = url
	}

	f.Err = ""
	return model.Fields{
		Title:      model.StringPtr(title),
		URL:        model.StringPtr(url),
		Desc:       model.StringPtr(f.Value(FieldDesc)),
		Categories: model.ParseCategories(f.Value(FieldCategories)),
		Icon:       model.StringPtr(f.Value(FieldIcon)),
	}, true
}
