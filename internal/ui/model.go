package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/catalog"
	"github.com/atomicstack/popup-picker/internal/data/dispatcher"
	"github.com/atomicstack/popup-picker/internal/state"
	"github.com/atomicstack/popup-picker/internal/theme"
	"github.com/atomicstack/popup-picker/internal/ui/command"
	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "catalog"
	defaultPageSize     = 50
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configure a Model.
type Options struct {
	// Context bounds page fetches. Nil means context.Background().
	Context          context.Context
	Width            int
	Height           int
	ShowFooter       bool
	RootPath         []string
	PageSize         int
	PageDelay        time.Duration
	Matcher          uistate.Matcher
	DisableFiltering bool
	Pagination       uistate.PaginationConfig
	Watcher          *backend.Watcher
	// Catalog preloads the store, bypassing the watcher's initial event.
	Catalog *catalog.Catalog
}

// Model implements the Bubble Tea model for the picker.
type Model struct {
	screens           []*screen
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendLastErr    string
	showFooter        bool
	filterCursor      cursor.Model
	filterCursorDirty bool
	cursorFocused     bool

	ctx      context.Context
	handlers map[reflect.Type]msgHandler
	pending  []tea.Cmd

	opts       Options
	keys       keyMap
	actions    *actionMenu
	bus        *command.Bus
	nav        *state.NavStack
	catalogs   state.CatalogStore
	dispatcher *dispatcher.Dispatcher
	pager      *backend.Pager
	rootTitle  string
	choice     *command.Choice
	fatal      error
}

// NewModel initialises the UI state. Screens are built once a catalog is
// available, either from opts.Catalog or from the watcher's first event.
func NewModel(opts Options) *Model {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Matcher == nil {
		opts.Matcher = uistate.SubstringMatcher{}
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	catalogs := state.NewCatalogStore()
	m := &Model{
		ctx:        ctx,
		backend:    opts.Watcher,
		showFooter: opts.ShowFooter,
		opts:       opts,
		keys:       defaultKeyMap(),
		bus:        command.New(),
		nav:        state.NewNavStack(),
		catalogs:   catalogs,
		dispatcher: dispatcher.New(catalogs),
		pager:      backend.NewPager(catalogs, opts.PageDelay),
		rootTitle:  defaultRootTitle,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.actions = newActionMenu(m)
	m.registerHandlers()
	if opts.Catalog != nil {
		catalogs.SetCatalog(opts.Catalog)
		m.buildRoot()
		m.syncViewport()
	}
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := m.drainPending()
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	m.cursorFocused = true
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.actions.handle(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, m.finishUpdate(cmds)
}

// Choice returns the committed pick, if any.
func (m *Model) Choice() (command.Choice, bool) {
	if m.choice == nil {
		return command.Choice{}, false
	}
	return *m.choice, true
}

// Err returns an error that ended the program, such as a catalog that never
// loaded.
func (m *Model) Err() error {
	return m.fatal
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(pageLoadedMsg{}):        m.handlePageLoadedMsg,
		reflect.TypeOf(command.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// queue holds a command produced inside a synchronous callback until the
// current Update returns.
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) drainPending() []tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return cmds
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncViewport()
	cmds = append(cmds, m.drainPending()...)
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		if m.cursorFocused {
			m.filterCursor.Blink = false
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
