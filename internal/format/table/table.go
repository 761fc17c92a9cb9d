// Package table lays out rows of cells as aligned text columns.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const ellipsis = "…"

// Format returns the rows padded according to the widest entry in each column.
// Widths are measured in terminal cells. Rows may be ragged; missing cells
// count as empty.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatCapped(rows, alignments, nil)
}

// FormatCapped is Format with a maximum width per column. Cells wider than
// their cap are cut with an ellipsis; a cap of zero or less leaves the column
// unbounded.
func FormatCapped(rows [][]string, alignments []Alignment, caps []int) []string {
	if len(rows) == 0 {
		return nil
	}
	cells := make([][]string, len(rows))
	var widths []int
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for c, cell := range row {
			if c < len(caps) && caps[c] > 0 {
				cell = runewidth.Truncate(cell, caps[c], ellipsis)
			}
			cells[i][c] = cell
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(cells))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[c]-runewidth.StringWidth(cell))
			switch {
			case c < len(alignments) && alignments[c] == AlignRight:
				b.WriteString(pad + cell)
			case c < len(row)-1:
				b.WriteString(cell + pad)
			default:
				b.WriteString(cell)
			}
		}
		out[i] = b.String()
	}
	return out
}
