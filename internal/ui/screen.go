package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popup-picker/internal/catalog"
	"github.com/atomicstack/popup-picker/internal/logging/events"
	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	"github.com/charmbracelet/bubbles/viewport"
)

// listCollectionID is the memory slot every screen's entry list uses inside
// its navigation frame.
const listCollectionID = "entries"

// listScroller adapts a viewport to the collection's scroll container. Rows
// are laid out from the top of the viewport content, so the content offset is
// always zero.
type listScroller struct {
	vp viewport.Model
}

func newListScroller() *listScroller {
	return &listScroller{vp: viewport.New(0, 0)}
}

func (s *listScroller) ContentOffset() int  { return 0 }
func (s *listScroller) ViewportHeight() int { return s.vp.Height }
func (s *listScroller) ScrollTo(offset int) { s.vp.SetYOffset(offset) }

// screen is one level of the catalog on the navigation stack.
type screen struct {
	id       string
	path     []string
	title    string
	registry *uistate.Registry
	list     *uistate.Collection
	scroller *listScroller

	entries    []catalog.Entry
	total      int
	loading    bool
	generation int

	// actions holds the action picked per entry key through the action menu.
	actions    map[string]string
	restoreKey string
	rows       []listRow
}

type listRow struct {
	header   bool
	title    string
	subtitle string
	index    int
}

func (m *Model) newScreen(frameID string, path []string, title string) *screen {
	scr := &screen{
		id:       frameID,
		path:     append([]string(nil), path...),
		title:    title,
		registry: uistate.NewRegistry(),
		scroller: newListScroller(),
		actions:  map[string]string{},
	}
	scr.list = uistate.NewCollection(scr.registry, uistate.Options{
		ID:               listCollectionID,
		DisableFiltering: m.opts.DisableFiltering,
		Matcher:          m.opts.Matcher,
		Pagination:       m.opts.Pagination,
		Frames:           m.nav,
		Scroller:         scr.scroller,
		Callbacks: uistate.Callbacks{
			OnSelectionChange: func(key string, selected bool) {
				if !selected {
					key = ""
				}
				events.Selection.Changed(scr.id, key)
			},
			OnSearchTextChange: func(text string) {
				events.Filter.Changed(scr.id, text)
				m.forceClearInfo()
				m.errMsg = ""
			},
			OnLoadMore: func() {
				m.requestPage(scr)
			},
		},
	})
	return scr
}

func (m *Model) current() *screen {
	if len(m.screens) == 0 {
		return nil
	}
	return m.screens[len(m.screens)-1]
}

func (m *Model) screenByID(id string) *screen {
	for _, scr := range m.screens {
		if scr.id == id {
			return scr
		}
	}
	return nil
}

// buildRoot creates the first screen once a catalog is available. An unknown
// root path falls back to the top of the catalog.
func (m *Model) buildRoot() {
	cat := m.catalogs.Catalog()
	if cat == nil || len(m.screens) > 0 {
		return
	}
	if title := strings.TrimSpace(cat.Title); title != "" {
		m.rootTitle = title
	}
	path := m.opts.RootPath
	title := m.rootTitle
	if len(path) > 0 {
		entry, err := cat.Lookup(path)
		switch {
		case err != nil:
			m.errMsg = fmt.Sprintf("Unknown root %q", strings.Join(path, "/"))
			path = nil
		case !entry.HasChildren():
			m.errMsg = fmt.Sprintf("Root %q has no entries", strings.Join(path, "/"))
			path = nil
		default:
			title = entry.Title
		}
	}
	frame := m.nav.Push(path)
	scr := m.newScreen(frame.ID, path, title)
	m.screens = []*screen{scr}
	scr.list.Mount()
	m.requestPage(scr)
}

func (m *Model) push(parent *screen, entry catalog.Entry) {
	parent.list.Unmount()
	path := append(append([]string(nil), parent.path...), entry.Key)
	frame := m.nav.Push(path)
	scr := m.newScreen(frame.ID, path, entry.Title)
	m.screens = append(m.screens, scr)
	scr.list.Mount()
	events.Navigation.Push(scr.id, entry.Key, len(m.screens))
	m.requestPage(scr)
}

// pop returns to the parent screen, which restores its remembered selection.
func (m *Model) pop() bool {
	if len(m.screens) <= 1 {
		return false
	}
	top := m.screens[len(m.screens)-1]
	top.list.Unmount()
	m.nav.Pop()
	m.screens = m.screens[:len(m.screens)-1]
	parent := m.current()
	parent.list.Mount()
	parent.reselect(parent.restoreKey)
	parent.restoreKey = ""
	events.Navigation.Pop(parent.id, len(m.screens))
	events.Selection.Restored(parent.id, parent.list.SelectedIndex())
	return true
}

// requestPage queues a fetch of the next page of scr. Only one fetch per
// screen is in flight at a time.
func (m *Model) requestPage(scr *screen) {
	if scr == nil || scr.loading {
		return
	}
	scr.loading = true
	events.Pagination.LoadMore(scr.id, len(scr.entries))
	m.queue(m.loadPageCmd(scr))
}

func (m *Model) appendEntries(scr *screen, entries []catalog.Entry) {
	if len(entries) == 0 {
		return
	}
	cat := m.catalogs.Catalog()
	scr.registry.Batch(func() {
		for _, entry := range entries {
			scr.registry.Register(itemForEntry(cat, entry))
		}
	})
	scr.entries = append(scr.entries, entries...)
}

func itemForEntry(cat *catalog.Catalog, entry catalog.Entry) uistate.Item {
	sectionTitle := entry.Section
	if cat != nil && entry.Section != "" {
		sectionTitle = cat.SectionTitle(entry.Section)
	}
	return uistate.Item{
		Key:          entry.Key,
		Title:        entry.Title,
		Subtitle:     entry.Subtitle,
		Keywords:     append([]string(nil), entry.Keywords...),
		SectionID:    entry.Section,
		SectionTitle: sectionTitle,
		Actions:      entry.ActionKeys(),
		Data:         entry,
	}
}

// reselect moves the selection back to key after a remount. Entries hidden by
// the current search are skipped.
func (s *screen) reselect(key string) bool {
	if key == "" {
		return false
	}
	item, ok := s.registry.FindKey(key)
	if !ok || !item.Visible {
		return false
	}
	return s.list.SelectByKey(key)
}

func (s *screen) selectedEntry() (catalog.Entry, bool) {
	item, ok := s.list.Selected()
	if !ok {
		return catalog.Entry{}, false
	}
	entry, ok := item.Data.(catalog.Entry)
	return entry, ok
}

// actionFor returns the action picked for entry, or its first action when
// none was picked or the pick is no longer offered.
func (s *screen) actionFor(entry catalog.Entry) string {
	keys := entry.ActionKeys()
	if chosen, ok := s.actions[entry.Key]; ok {
		for _, k := range keys {
			if k == chosen {
				return chosen
			}
		}
	}
	return keys[0]
}
