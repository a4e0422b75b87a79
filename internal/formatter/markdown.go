// Package formatter renders cleaning reports as markdown with tables aligned
// by display width.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"slcricket/pkg/metadata"
)

// minColumnWidth is the width of the shortest separator cell, "---".
const minColumnWidth = 3

// FormatMarkdown realigns every table in content. A signed document is
// re-signed with its original run ID so the block matches the new body.
func FormatMarkdown(content string) (string, error) {
	meta, body := metadata.Extract(content)

	lines := strings.Split(body, "\n")

	var (
		out   []string
		table []string
	)

	flush := func() {
		if len(table) > 0 {
			out = append(out, alignRows(table)...)
			table = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
			table = append(table, line)

			continue
		}

		flush()

		out = append(out, line)
	}

	flush()

	formatted := strings.Join(out, "\n")
	if meta == nil {
		return formatted, nil
	}

	return metadata.Sign(formatted, meta.RunID, meta.Validation), nil
}

// RenderTable renders header and rows as an aligned markdown table.
func RenderTable(header []string, rows [][]string) string {
	cells := make([][]string, 0, len(rows)+2)
	cells = append(cells, header, nil)
	cells = append(cells, rows...)

	return strings.Join(align(cells, 1), "\n")
}

// alignRows parses raw table lines and realigns them. A single line is not
// a table and is returned unchanged.
func alignRows(rows []string) []string {
	if len(rows) < 2 {
		return rows
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, splitCells(row))
	}

	separator := -1
	if isSeparator(cells[1]) {
		separator = 1
	}

	return align(cells, separator)
}

func splitCells(row string) []string {
	parts := strings.Split(row, "|")

	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}

	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}

	return cells
}

func isSeparator(cells []string) bool {
	for _, cell := range cells {
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}

	return true
}

// align pads every cell to its column's display width. The row at index
// separator is redrawn as dashes.
func align(table [][]string, separator int) []string {
	columns := 0
	for _, row := range table {
		columns = max(columns, len(row))
	}

	widths := make([]int, columns)
	for i := range widths {
		widths[i] = minColumnWidth
	}

	for r, row := range table {
		if r == separator {
			continue
		}

		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	result := make([]string, 0, len(table))

	for r, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for i := 0; i < columns; i++ {
			sb.WriteString(" ")

			if r == separator {
				sb.WriteString(strings.Repeat("-", widths[i]))
			} else {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}

				sb.WriteString(runewidth.FillRight(cell, widths[i]))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
