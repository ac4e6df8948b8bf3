package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/navmarks/internal/model"
	"github.com/nikbrunner/navmarks/internal/session"
)

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeForm
	ModeConfirmDelete
	ModeHelp
)

// MessageType selects how the status message is rendered.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// AllCategoriesLabel names the sidebar entry that shows every bookmark.
const AllCategoriesLabel = "全部"

// App is the main bubbletea model for the bookmark manager.
// All list mutations go through the session inside Update.
type App struct {
	ctx     context.Context
	session *session.Session
	keys    KeyMap
	styles  Styles

	copyToClipboard func(string) error
	openURL         func(string) error

	mode Mode

	// Sidebar: index 0 is AllCategoriesLabel, the rest mirror categories
	categories  []model.CategoryCount
	categoryIdx int

	filter textinput.Model
	query  string

	items  []model.Bookmark // filtered list shown in the main pane
	cursor int
	offset int

	form FormState

	// For gg command
	lastKeyWasG bool

	messageText string
	messageType MessageType

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Session *session.Session // must be initialized
	Context context.Context  // optional, defaults to context.Background()
	Keys    *KeyMap          // optional, uses default if nil
	Styles  *Styles          // optional, uses default if nil

	// CopyToClipboard defaults to the system clipboard.
	CopyToClipboard func(string) error
	// OpenURL opens a URL in the browser. Opening is disabled when nil.
	OpenURL func(string) error
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	copyFn := params.CopyToClipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "search title, description, categories"
	filter.CharLimit = 256
	filter.Width = 40

	app := App{
		ctx:             ctx,
		session:         params.Session,
		keys:            keys,
		styles:          styles,
		copyToClipboard: copyFn,
		openURL:         params.OpenURL,
		filter:          filter,
		form:            NewFormState(),
		width:           80,
		height:          24,
	}

	app.refresh()
	return app
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.scroll()
	return a
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Items returns the bookmarks currently shown.
func (a App) Items() []model.Bookmark {
	return a.items
}

// ActiveCategory returns the selected category, "" for all.
func (a App) ActiveCategory() string {
	if a.categoryIdx == 0 || a.categoryIdx > len(a.categories) {
		return ""
	}
	return a.categories[a.categoryIdx-1].Name
}

// Query returns the active search text.
func (a App) Query() string {
	return a.query
}

// Message returns the status line text.
func (a App) Message() string {
	return a.messageText
}

// Form returns the add/edit form state.
func (a App) Form() FormState {
	return a.form
}

// refresh recomputes the sidebar and the filtered list from the session.
// The active category is kept by name and dropped when it no longer exists.
func (a *App) refresh() {
	active := a.ActiveCategory()
	a.categories = a.session.CategoryCounts()

	a.categoryIdx = 0
	for i, c := range a.categories {
		if c.Name == active {
			a.categoryIdx = i + 1
			break
		}
	}

	a.items = a.session.Filter(a.ActiveCategory(), a.query)
	if a.cursor >= len(a.items) {
		a.cursor = max(0, len(a.items)-1)
	}
	a.scroll()
}

// selected returns the bookmark under the cursor.
func (a App) selected() *model.Bookmark {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return nil
	}
	return &a.items[a.cursor]
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.scroll()
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeForm:
			return a.updateForm(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			a.scroll()
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	// Any key clears the previous message
	a.messageText = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}

	case key.Matches(msg, a.keys.NextCategory):
		a.categoryIdx = (a.categoryIdx + 1) % (len(a.categories) + 1)
		a.cursor = 0
		a.refresh()

	case key.Matches(msg, a.keys.PrevCategory):
		n := len(a.categories) + 1
		a.categoryIdx = (a.categoryIdx - 1 + n) % n
		a.cursor = 0
		a.refresh()

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filter.SetValue(a.query)
		a.filter.CursorEnd()
		return a, a.filter.Focus()

	case key.Matches(msg, a.keys.ClearFilter):
		if a.query != "" {
			a.query = ""
			a.filter.Reset()
			a.refresh()
		}

	case key.Matches(msg, a.keys.Add):
		a.mode = ModeForm
		return a, a.form.Open(nil)

	case key.Matches(msg, a.keys.Edit):
		if b := a.selected(); b != nil {
			a.mode = ModeForm
			return a, a.form.Open(b)
		}

	case key.Matches(msg, a.keys.Delete):
		if a.selected() != nil {
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.YankURL):
		a.yankURL()

	case key.Matches(msg, a.keys.Open):
		a.openSelected()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	a.scroll()
	return a, nil
}

// updateFilter applies the search text live on every keystroke.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.mode = ModeNormal
		a.filter.Blur()
		return a, nil

	case tea.KeyEsc, tea.KeyCtrlC:
		a.mode = ModeNormal
		a.filter.Blur()
		a.filter.Reset()
		a.query = ""
		a.refresh()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	if a.filter.Value() != a.query {
		a.query = a.filter.Value()
		a.cursor = 0
		a.refresh()
	}
	return a, cmd
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		a.submitForm()
		return a, nil

	case key.Matches(msg, a.keys.NextField):
		return a, a.form.Next()

	case key.Matches(msg, a.keys.PrevField):
		return a, a.form.Prev()
	}

	return a, a.form.Update(msg)
}

// submitForm saves the form. Validation errors keep the form open.
func (a *App) submitForm() {
	fields, ok := a.form.Fields()
	if !ok {
		return
	}

	if a.form.Editing() {
		updated, err := a.session.Update(a.ctx, a.form.EditingID, fields)
		switch {
		case err != nil:
			a.form.Err = "Save failed: " + err.Error()
			return
		case !updated:
			a.setMessage(MessageError, "Bookmark no longer exists")
		default:
			a.setMessage(MessageSuccess, "Updated "+*fields.Title)
		}
	} else {
		b, err := a.session.Add(a.ctx, fields)
		if err != nil {
			a.form.Err = "Save failed: " + err.Error()
			return
		}
		a.setMessage(MessageSuccess, "Added "+b.Title)
		a.cursor = 0
	}

	a.mode = ModeNormal
	a.refresh()
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.mode = ModeNormal
		b := a.selected()
		if b == nil {
			return a, nil
		}
		title := b.Title
		removed, err := a.session.Remove(a.ctx, b.ID)
		switch {
		case err != nil:
			a.setMessage(MessageError, "Delete failed: "+err.Error())
		case removed:
			a.setMessage(MessageSuccess, "Deleted "+title)
		}
		a.refresh()

	case key.Matches(msg, a.keys.Deny):
		a.mode = ModeNormal
	}
	return a, nil
}

func (a *App) yankURL() {
	b := a.selected()
	if b == nil {
		return
	}
	if err := a.copyToClipboard(b.URL); err != nil {
		a.setMessage(MessageError, "Copy failed: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Copied "+b.URL)
}

func (a *App) openSelected() {
	b := a.selected()
	if b == nil {
		return
	}
	if a.openURL == nil {
		a.setMessage(MessageInfo, b.URL)
		return
	}
	if err := a.openURL(b.URL); err != nil {
		a.setMessage(MessageError, fmt.Sprintf("Open failed: %v", err))
		return
	}
	a.setMessage(MessageInfo, "Opened "+b.URL)
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
