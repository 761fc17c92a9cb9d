package ui

import (
	"unicode"

	"github.com/atomicstack/popup-picker/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(scr *screen, before int) {
	if scr == nil {
		return
	}
	if before != scr.list.SearchCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput edits the search text of the current screen. It reports
// false for keys it does not consume.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	scr := m.current()
	if scr == nil || !scr.list.FilteringEnabled() {
		return false, nil
	}
	list := scr.list
	before := list.SearchCursorPos()
	switch msg.String() {
	case "ctrl+u":
		if list.SearchText() == "" {
			return false, nil
		}
		list.SetSearchInput("", 0)
		m.noteFilterCursorChange(scr, before)
		events.Filter.Cleared(scr.id)
		return true, nil
	case "ctrl+w":
		if !list.DeleteSearchWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(scr, before)
		return true, nil
	case "ctrl+a":
		return m.moveFilterCursor(scr, before, list.MoveSearchCursorStart()), nil
	case "ctrl+e":
		return m.moveFilterCursor(scr, before, list.MoveSearchCursorEnd()), nil
	case "alt+b":
		return m.moveFilterCursor(scr, before, list.MoveSearchCursorWordBackward()), nil
	case "alt+f":
		return m.moveFilterCursor(scr, before, list.MoveSearchCursorWordForward()), nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !list.DeleteSearchRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(scr, before)
		return true, nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
			if unicode.IsSpace(r) {
				// spaces arrive as tea.KeySpace
				return false, nil
			}
		}
		return m.appendToFilter(scr, string(msg.Runes)), nil
	case tea.KeySpace:
		return m.appendToFilter(scr, " "), nil
	case tea.KeyLeft:
		return m.moveFilterCursor(scr, before, list.MoveSearchCursorRuneBackward()), nil
	case tea.KeyRight:
		return m.moveFilterCursor(scr, before, list.MoveSearchCursorRuneForward()), nil
	}
	return false, nil
}

func (m *Model) moveFilterCursor(scr *screen, before int, moved bool) bool {
	if !moved {
		return false
	}
	m.noteFilterCursorChange(scr, before)
	events.Filter.Cursor(scr.id, scr.list.SearchCursorPos())
	return true
}

func (m *Model) appendToFilter(scr *screen, text string) bool {
	before := scr.list.SearchCursorPos()
	if !scr.list.InsertSearchText(text) {
		return false
	}
	m.noteFilterCursorChange(scr, before)
	return true
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	scr := m.current()
	text := ""
	pos := 0
	placeholder := "(type to search)"
	if scr != nil {
		text = scr.list.SearchText()
		pos = scr.list.SearchCursorPos()
		if !scr.list.FilteringEnabled() {
			placeholder = "(search disabled)"
		}
	}
	if text == "" {
		runes := []rune(placeholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
