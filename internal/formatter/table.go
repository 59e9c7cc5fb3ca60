// Package formatter renders markdown tables aligned by display width.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minColumnWidth keeps separator cells at least "---".
const minColumnWidth = 3

// width measures display columns with ambiguous-width runes counted as narrow,
// so output does not depend on the terminal locale.
var width = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false

	return c
}()

// Table renders a header row, a separator and the given rows as an aligned
// markdown table. Cells are trimmed and short rows are padded with empty cells.
func Table(headers []string, rows [][]string) []string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, trimCells(headers))

	for _, row := range rows {
		table = append(table, trimCells(row))
	}

	cols := 0
	for _, row := range table {
		cols = max(cols, len(row))
	}

	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColumnWidth
	}

	for _, row := range table {
		for c, cell := range row {
			widths[c] = max(widths[c], width.StringWidth(cell))
		}
	}

	result := make([]string, 0, len(table)+1)
	result = append(result, renderRow(table[0], widths))

	sep := make([]string, cols)
	for c := range sep {
		sep[c] = strings.Repeat("-", widths[c])
	}

	result = append(result, renderRow(sep, widths))

	for _, row := range table[1:] {
		result = append(result, renderRow(row, widths))
	}

	return result
}

func renderRow(row []string, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for c, w := range widths {
		cell := ""
		if c < len(row) {
			cell = row[c]
		}

		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", w-width.StringWidth(cell)))
		sb.WriteString(" |")
	}

	return sb.String()
}

func trimCells(row []string) []string {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = strings.TrimSpace(cell)
	}

	return cells
}
