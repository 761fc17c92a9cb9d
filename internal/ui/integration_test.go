package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reorderedServicesCatalog = `
title: Services
sections:
  - id: web
    title: Web
  - id: data
    title: Data
entries:
  - key: postgres
    title: Postgres
    section: data
    keywords: [sql, db]
  - key: frontend
    title: Frontend
    section: web
    entries:
      - key: assets
        title: Assets
      - key: ssr
        title: SSR
  - key: api
    title: API
    subtitle: public gateway
    section: web
    actions:
      - key: open
        title: Open
      - key: logs
        title: Tail logs
        section: debug
`

func sendCatalog(h *Harness, cat *catalog.Catalog) {
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindCatalog, Data: cat}})
}

func withoutEntry(t *testing.T, doc, key string) *catalog.Catalog {
	t.Helper()
	cat := parseCatalog(t, doc)
	kept := cat.Entries[:0]
	for _, entry := range cat.Entries {
		if entry.Key != key {
			kept = append(kept, entry)
		}
	}
	cat.Entries = kept
	return cat
}

func TestReloadRemovingEntryKeepsSelectionInPlace(t *testing.T) {
	h := newTestHarness(t, Options{})
	scr := h.Model().current()
	h.Keys(tea.KeyUp)
	require.Equal(t, "postgres", selectedKey(h))
	generation := scr.generation

	sendCatalog(h, withoutEntry(t, servicesCatalog, "frontend"))

	assert.Same(t, scr, h.Model().current())
	assert.Equal(t, generation, scr.generation, "no remount")
	assert.Equal(t, "postgres", selectedKey(h))
	assert.Len(t, scr.list.Items(), 2)
	assert.Equal(t, 2, scr.total)
	assert.NotContains(t, h.View(), "Frontend")

	h.Keys(tea.KeyDown)
	assert.Equal(t, "api", selectedKey(h))
}

func TestReloadRemovingUnloadedEntryAdjustsTotal(t *testing.T) {
	h := newTestHarness(t, Options{Catalog: numberedCatalog(t, 20), PageSize: 5})
	scr := h.Model().current()
	require.Len(t, scr.entries, 5)

	next := numberedCatalog(t, 20)
	next.Entries = next.Entries[:19]
	sendCatalog(h, next)

	assert.Len(t, scr.entries, 5)
	assert.Equal(t, 19, scr.total)
	assert.True(t, scr.list.HasMore())
	assert.Contains(t, h.View(), "(5/19)")
}

func TestReloadReorderRemountsAndKeepsKey(t *testing.T) {
	h := newTestHarness(t, Options{})
	scr := h.Model().current()
	h.Keys(tea.KeyDown)
	require.Equal(t, "frontend", selectedKey(h))
	generation := scr.generation

	sendCatalog(h, parseCatalog(t, reorderedServicesCatalog))

	assert.Equal(t, generation+1, scr.generation)
	assert.Equal(t, "frontend", selectedKey(h))
	require.Len(t, scr.entries, 3)
	assert.Equal(t, "postgres", scr.entries[0].Key)
	assert.False(t, scr.list.HasMore())
	assert.False(t, scr.loading)
}

func TestReloadChangedTitleRemounts(t *testing.T) {
	h := newTestHarness(t, Options{})
	scr := h.Model().current()

	sendCatalog(h, parseCatalog(t, strings.Replace(servicesCatalog, "title: API", "title: Gateway", 1)))

	assert.Equal(t, "api", selectedKey(h))
	item, ok := scr.list.Selected()
	require.True(t, ok)
	assert.Equal(t, "Gateway", item.Title)
	assert.Contains(t, h.View(), "Gateway")
}

func TestReloadRemovingOpenScreenPopsToParent(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Keys(tea.KeyDown, tea.KeyEnter)
	require.Len(t, h.Model().screens, 2)

	sendCatalog(h, withoutEntry(t, servicesCatalog, "frontend"))

	m := h.Model()
	require.Len(t, m.screens, 1)
	assert.Equal(t, 1, m.nav.Depth())
	assert.Equal(t, "Frontend is no longer in the catalog", m.currentInfo())
	assert.Equal(t, "api", selectedKey(h))
	assert.False(t, h.Quit())
}

func TestReloadRefreshesChildScreen(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Keys(tea.KeyDown, tea.KeyEnter, tea.KeyDown)
	require.Equal(t, "ssr", selectedKey(h))

	doc := strings.Replace(servicesCatalog, "      - key: assets\n        title: Assets\n", "", 1)
	sendCatalog(h, parseCatalog(t, doc))

	m := h.Model()
	require.Len(t, m.screens, 2)
	assert.Equal(t, "ssr", selectedKey(h))
	assert.Len(t, m.current().entries, 1)
}

func TestReloadClosesActionMenu(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Keys(tea.KeyTab)
	require.True(t, h.Model().actions.isOpen())

	sendCatalog(h, parseCatalog(t, servicesCatalog))
	assert.False(t, h.Model().actions.isOpen())
}

func TestReloadErrorKeepsLastCatalog(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindCatalog, Err: errors.New("boom")}})

	assert.False(t, h.Quit())
	assert.NoError(t, h.Model().Err())
	assert.Contains(t, h.View(), "Catalog: boom")
	assert.Equal(t, "api", selectedKey(h))

	sendCatalog(h, parseCatalog(t, servicesCatalog))
	assert.NotContains(t, h.View(), "Catalog: boom")
}

func TestInitialLoadErrorQuits(t *testing.T) {
	h := NewHarness(NewModel(Options{}))
	boom := errors.New("boom")
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindCatalog, Err: boom}})

	assert.True(t, h.Quit())
	assert.ErrorIs(t, h.Model().Err(), boom)
}

func TestFirstCatalogEventBuildsRoot(t *testing.T) {
	h := NewHarness(NewModel(Options{}))
	assert.Contains(t, h.View(), "Loading catalog…")
	assert.Nil(t, h.Model().current())

	sendCatalog(h, parseCatalog(t, servicesCatalog))

	scr := h.Model().current()
	require.NotNil(t, scr)
	assert.Len(t, scr.entries, 3)
	assert.Equal(t, "api", selectedKey(h))
	assert.Contains(t, h.View(), "Services (3/3)")
}

func TestRemountSkipsEntryHiddenBySearch(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("post")
	require.Equal(t, "postgres", selectedKey(h))

	doc := strings.Replace(servicesCatalog, "title: Postgres", "title: Pg", 1)
	doc = strings.Replace(doc, "keywords: [sql, db]", "keywords: [db]", 1)
	sendCatalog(h, parseCatalog(t, doc))

	assert.Empty(t, selectedKey(h))
	assert.Empty(t, h.Model().current().list.VisibleItems())
	h.Keys(tea.KeyEnter)
	assert.False(t, h.Quit())
	_, ok := h.Model().Choice()
	assert.False(t, ok)
}

func TestRemountKeepsVisibleSelectionWhileSearching(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("post")
	require.Equal(t, "postgres", selectedKey(h))

	sendCatalog(h, parseCatalog(t, reorderedServicesCatalog))

	assert.Equal(t, "postgres", selectedKey(h))
}

func TestRemovingSelectedEntryWhileSearchingSelectsFirstVisible(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("p")
	h.Keys(tea.KeyDown)
	require.Equal(t, "postgres", selectedKey(h))
	generation := h.Model().current().generation

	sendCatalog(h, withoutEntry(t, servicesCatalog, "postgres"))

	assert.Equal(t, generation, h.Model().current().generation, "no remount")
	assert.Equal(t, "api", selectedKey(h))
	h.Keys(tea.KeyEnter)
	require.True(t, h.Quit())
	choice, ok := h.Model().Choice()
	require.True(t, ok)
	assert.Equal(t, "api", choice.Key)
}

func TestRemovingSelectedEntrySelectsFirst(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Keys(tea.KeyEnd)
	require.Equal(t, "postgres", selectedKey(h))

	sendCatalog(h, withoutEntry(t, servicesCatalog, "postgres"))

	assert.Equal(t, "api", selectedKey(h))
	assert.Equal(t, 0, h.Model().current().list.SelectedIndex())
}
