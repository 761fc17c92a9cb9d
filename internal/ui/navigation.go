package ui

import (
	"github.com/atomicstack/popup-picker/internal/format/table"
	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	scr := m.current()
	if scr == nil {
		if key.Matches(keyMsg, m.keys.Back) {
			return tea.Quit
		}
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		scr.list.Move(-1)
	case key.Matches(keyMsg, m.keys.Down):
		scr.list.Move(1)
	case key.Matches(keyMsg, m.keys.PageUp):
		scr.list.PageUp(m.pageStep(scr))
	case key.Matches(keyMsg, m.keys.PageDown):
		scr.list.PageDown(m.pageStep(scr))
	case key.Matches(keyMsg, m.keys.Home):
		scr.list.JumpFirst()
	case key.Matches(keyMsg, m.keys.End):
		scr.list.JumpLast()
	case key.Matches(keyMsg, m.keys.Enter):
		return m.handleEnterKey()
	case key.Matches(keyMsg, m.keys.Back):
		return m.handleEscapeKey()
	case key.Matches(keyMsg, m.keys.Actions):
		return m.openActions()
	default:
		_, cmd := m.handleTextInput(keyMsg)
		return cmd
	}
	return nil
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if !m.pop() {
		return tea.Quit
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	scr := m.current()
	if scr == nil {
		return nil
	}
	entry, ok := scr.selectedEntry()
	if !ok {
		return nil
	}
	m.errMsg = ""
	m.forceClearInfo()
	if entry.HasChildren() {
		m.push(scr, entry)
		return nil
	}
	return m.commitCmd(scr, entry)
}

func (m *Model) openActions() tea.Cmd {
	scr := m.current()
	if scr == nil {
		return nil
	}
	entry, ok := scr.selectedEntry()
	if !ok {
		return nil
	}
	return m.actions.open(scr, entry)
}

func (m *Model) pageStep(scr *screen) int {
	if h := m.listHeight(); h > 0 {
		return h
	}
	_, total := scr.list.VisiblePosition()
	if total < 1 {
		return 1
	}
	return total
}

// syncViewport lays out the current screen, records each visible item's row
// as its geometry and re-centres the selection.
func (m *Model) syncViewport() {
	scr := m.current()
	if scr == nil {
		return
	}
	scr.rows = layoutRows(scr)
	height := m.listHeight()
	if height < 0 {
		height = len(scr.rows)
	}
	if height < 1 {
		height = 1
	}
	vp := &scr.scroller.vp
	vp.Width = m.width
	vp.Height = height
	vp.SetContent(m.renderRows(scr))
	scr.list.ScrollToSelected()
}

func layoutRows(scr *screen) []listRow {
	sections := scr.list.Sections()
	rows := make([]listRow, 0, len(scr.entries)+len(sections))
	type placement struct {
		index int
		row   int
	}
	placed := make([]placement, 0, len(scr.entries))
	for _, section := range sections {
		if section.ShowHeader {
			rows = append(rows, listRow{header: true, title: section.Title, index: uistate.NoSelection})
		}
		for _, item := range section.Items {
			placed = append(placed, placement{index: item.Index, row: len(rows)})
			rows = append(rows, listRow{title: item.Title, subtitle: item.Subtitle, index: item.Index})
		}
	}
	scr.registry.Batch(func() {
		for _, p := range placed {
			scr.registry.Update(p.index, uistate.GeometryPatch(p.row, 1))
		}
	})
	return rows
}

func (m *Model) renderRows(scr *screen) string {
	if len(scr.rows) == 0 {
		return renderLines(applyWidth([]styledLine{m.emptyLine(scr)}, m.width))
	}
	cells := make([][]string, 0, len(scr.rows))
	for _, row := range scr.rows {
		if !row.header {
			cells = append(cells, []string{row.title, row.subtitle})
		}
	}
	var caps []int
	if m.width > 0 {
		caps = []int{(m.width - 2) / 2}
	}
	formatted := table.FormatCapped(cells, nil, caps)
	lines := make([]styledLine, 0, len(scr.rows)+1)
	next := 0
	for _, row := range scr.rows {
		if row.header {
			lines = append(lines, styledLine{text: row.title, style: styles.SectionHeader})
			continue
		}
		lines = append(lines, buildItemLine(trimRight(formatted[next]), scr.list.IsSelected(row.index), m.width))
		next++
	}
	if scr.loading {
		lines = append(lines, styledLine{text: "Loading more…", style: styles.Loading})
	}
	return renderLines(applyWidth(lines, m.width))
}
