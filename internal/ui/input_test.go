package ui

import (
	"testing"

	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypingFiltersList(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Keys(tea.KeyDown)

	h.Type("post")
	scr := h.Model().current()
	assert.Equal(t, "post", scr.list.SearchText())
	assert.Equal(t, 4, scr.list.SearchCursorPos())
	assert.Equal(t, "postgres", selectedKey(h))
	visible := scr.list.VisibleItems()
	require.Len(t, visible, 1)
	assert.Equal(t, "postgres", visible[0].Key)
}

func TestKeywordsAndSectionTitlesAreSearchable(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("sql")
	assert.Equal(t, "postgres", selectedKey(h))

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	h.Type("web")
	assert.Len(t, h.Model().current().list.VisibleItems(), 2)
}

func TestNoMatchesClearsSelection(t *testing.T) {
	h := newTestHarness(t, Options{})

	h.Type("pgx")
	scr := h.Model().current()
	assert.Equal(t, "", selectedKey(h))
	assert.Contains(t, h.View(), `No matches for "pgx"`)

	h.Keys(tea.KeyEnter)
	assert.False(t, h.Quit(), "enter without a selection does nothing")

	h.Keys(tea.KeyBackspace)
	assert.Equal(t, "pg", scr.list.SearchText())

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "", scr.list.SearchText())
	assert.Equal(t, "api", selectedKey(h))
}

func TestSearchCursorEditing(t *testing.T) {
	h := newTestHarness(t, Options{})
	scr := h.Model().current()

	h.Type("ab cd")
	h.Keys(tea.KeyLeft)
	assert.Equal(t, 4, scr.list.SearchCursorPos())
	h.Keys(tea.KeyRight)
	assert.Equal(t, 5, scr.list.SearchCursorPos())

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, 0, scr.list.SearchCursorPos())
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f"), Alt: true})
	assert.Equal(t, "ab cd", scr.list.SearchText(), "alt+f moves, it does not type")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, 5, scr.list.SearchCursorPos())

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, "ab ", scr.list.SearchText())
}

func TestFilteringDisabledIgnoresTyping(t *testing.T) {
	h := newTestHarness(t, Options{DisableFiltering: true})

	h.Type("zzz")
	scr := h.Model().current()
	assert.Equal(t, "", scr.list.SearchText())
	assert.Len(t, scr.list.VisibleItems(), 3)
	assert.Contains(t, h.Model().filterPrompt(), "(search disabled)")
}

func TestFuzzyMatching(t *testing.T) {
	h := newTestHarness(t, Options{Matcher: uistate.FuzzyMatcher{}})

	h.Type("pgs")
	visible := h.Model().current().list.VisibleItems()
	require.Len(t, visible, 1)
	assert.Equal(t, "postgres", visible[0].Key)
}

func TestFilterPromptPlaceholder(t *testing.T) {
	h := newTestHarness(t, Options{})
	prompt := h.Model().filterPrompt()
	assert.Contains(t, prompt, "type to search")

	h.Type("api")
	assert.Contains(t, h.Model().filterPrompt(), "api")
}
