package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // already styled
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	if header := m.menuHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	var body string
	switch scr := m.current(); {
	case m.actions.isOpen():
		body = m.actions.view(m.width)
	case scr != nil:
		body = scr.scroller.vp.View()
	default:
		body = renderLines([]styledLine{{text: "Loading catalog…", style: styles.Loading}})
	}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, styledLine{text: line, raw: true})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.keys.footer(), style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottomLines := []styledLine{
		m.statusLine(),
		{text: m.filterPrompt(), raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

// statusLine shows errors first, then the action that enter would commit for
// entries offering more than one.
func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if m.backendLastErr != "" {
		return styledLine{text: fmt.Sprintf("Catalog: %s", m.backendLastErr), style: styles.Error}
	}
	scr := m.current()
	if scr == nil {
		return styledLine{}
	}
	entry, ok := scr.selectedEntry()
	if !ok || len(entry.Actions) < 2 {
		return styledLine{}
	}
	action := scr.actionFor(entry)
	for _, a := range entry.Actions {
		if a.Key == action {
			action = a.Title
			break
		}
	}
	return styledLine{text: fmt.Sprintf("Action: %s", action), style: styles.Info}
}

func (m *Model) emptyLine(scr *screen) styledLine {
	if scr.loading && len(scr.entries) == 0 {
		return styledLine{text: "Loading…", style: styles.Loading}
	}
	if text := scr.list.SearchText(); strings.TrimSpace(text) != "" && len(scr.entries) > 0 {
		return styledLine{text: fmt.Sprintf("No matches for %q", text), style: styles.Info}
	}
	return styledLine{text: "(no entries)", style: styles.Info}
}

// buildItemLine constructs a single styledLine for a list item.
// width is the target column width; when > 0 the text is padded so that
// the selected item's background spans the full container.
func buildItemLine(label string, selected bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	line := strings.Join(segments, menuHeaderSeparator)
	if scr := m.current(); scr != nil && scr.total > 0 {
		line += fmt.Sprintf(" (%d/%d)", len(scr.entries), scr.total)
	}
	return line
}

func (m *Model) headerSegments() []string {
	if len(m.screens) == 0 {
		return nil
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	segments := []string{root}
	for _, scr := range m.screens {
		if len(scr.path) == 0 {
			continue
		}
		if title := strings.TrimSpace(scr.title); title != "" {
			segments = append(segments, title)
		}
	}
	return segments
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

// listHeight returns the rows available to the entry list, or -1 when the
// terminal height is unknown.
func (m *Model) listHeight() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	if header := m.menuHeader(); header != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	out := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		out[i] = line
	}
	return out
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width cells, ending in an ellipsis. ANSI escapes
// do not count towards the width.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func trimRight(text string) string {
	return strings.TrimRight(text, " ")
}
