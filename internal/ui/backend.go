package ui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/catalog"
	"github.com/atomicstack/popup-picker/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.backendLastErr = res.Err.Error()
		if len(m.screens) == 0 {
			// Nothing to fall back to before the first good load.
			m.fatal = res.Err
			return tea.Quit
		}
		return nil
	}
	if !res.CatalogUpdated {
		return nil
	}
	m.backendLastErr = ""
	cat := m.catalogs.Catalog()
	path := ""
	if m.backend != nil {
		path = m.backend.Path()
	}
	events.Catalog.Loaded(path, len(cat.Entries))
	m.resyncScreens(cat)
	return nil
}

// resyncScreens reconciles every open screen with a reloaded catalog. Screens
// whose level no longer exists are closed.
func (m *Model) resyncScreens(cat *catalog.Catalog) {
	if len(m.screens) == 0 {
		m.buildRoot()
		return
	}
	if title := strings.TrimSpace(cat.Title); title != "" {
		m.rootTitle = title
	}
	if m.actions.isOpen() {
		m.actions.cancel()
	}
	for i, scr := range m.screens {
		entries, err := cat.Resolve(scr.path)
		if err != nil && i == 0 {
			m.errMsg = fmt.Sprintf("Root %q is no longer in the catalog", strings.Join(scr.path, "/"))
			scr.path = nil
			scr.title = m.rootTitle
			entries = cat.Entries
			err = nil
		}
		if err != nil {
			gone := scr.title
			for len(m.screens) > i {
				m.pop()
			}
			m.setInfo(fmt.Sprintf("%s is no longer in the catalog", gone))
			return
		}
		m.resyncScreen(scr, entries, i == len(m.screens)-1)
	}
}

func (m *Model) resyncScreen(scr *screen, next []catalog.Entry, top bool) {
	prevKey := scr.list.SelectedKey()
	if kept, ok := retainedPrefix(scr.entries, next); ok {
		if len(kept) < len(scr.entries) {
			keep := make(map[string]struct{}, len(kept))
			for _, entry := range kept {
				keep[entry.Key] = struct{}{}
			}
			scr.registry.Batch(func() {
				for _, entry := range scr.entries {
					if _, ok := keep[entry.Key]; ok {
						continue
					}
					if item, ok := scr.registry.FindKey(entry.Key); ok {
						scr.registry.Unregister(item.Index)
					}
				}
			})
			scr.entries = kept
		}
		scr.total = len(next)
		scr.list.SetHasMore(len(kept) < len(next))
		events.Catalog.Resync(scr.id, "in-place")
		return
	}

	if top {
		scr.list.Unmount()
	}
	n := len(scr.entries)
	if n < m.opts.PageSize {
		n = m.opts.PageSize
	}
	if n > len(next) {
		n = len(next)
	}
	scr.generation++
	scr.loading = false
	scr.entries = nil
	scr.registry.Reset()
	m.appendEntries(scr, next[:n])
	scr.total = len(next)
	scr.list.SetHasMore(n < len(next))
	if top {
		scr.list.Mount()
		scr.reselect(prevKey)
	} else {
		scr.restoreKey = prevKey
	}
	events.Catalog.Resync(scr.id, "remount")
}

// retainedPrefix reports whether next starts with the loaded entries that
// survive in it, unchanged and in their original order. Only removals can
// then be applied in place.
func retainedPrefix(loaded, next []catalog.Entry) ([]catalog.Entry, bool) {
	present := make(map[string]struct{}, len(next))
	for _, entry := range next {
		present[entry.Key] = struct{}{}
	}
	kept := make([]catalog.Entry, 0, len(loaded))
	for _, entry := range loaded {
		if _, ok := present[entry.Key]; ok {
			kept = append(kept, entry)
		}
	}
	if len(kept) > len(next) {
		return nil, false
	}
	for i, entry := range kept {
		if !reflect.DeepEqual(entry, next[i]) {
			return nil, false
		}
	}
	return kept, true
}
