// Package render formats the fixed-width plain-text tables that make up the
// weekly report.
package render

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// FormatFunc formats one cell. cell is the value already cast to text, width
// is the fixed width of the cell's column, and col is the column key — empty
// for the implicit leading row-key column. Returning ok=false drops the cell
// from the rendered line entirely.
type FormatFunc func(cell string, width int, col string) (formatted string, ok bool)

// TableOptions controls Tablify.
type TableOptions struct {
	// ShowHeader emits a first line of column labels. The row-key column's
	// header is rendered blank.
	ShowHeader bool
	// RowOrder fixes the row order. nil means all row keys, sorted; an empty
	// non-nil slice renders no data rows.
	RowOrder []string
	// ColOrder fixes the column order. nil means the column keys of the
	// first row, sorted. Every listed column must exist in every row.
	ColOrder []string
	// Padding is the number of spaces between columns; values below 1 are
	// treated as 1.
	Padding int
	// Format overrides the default cell formatter: data cells and header
	// labels right-justified, the row-key column left-justified.
	Format FormatFunc
}

// Tablify renders a mapping of row key -> column key -> value as an aligned
// text table. Each column (including the implicit row-key column) is as wide
// as its widest header label or cell value, measured in runes, and that
// width holds for the whole table. Values are cast to text with fmt.Sprint.
func Tablify(data map[string]map[string]any, opts TableOptions) string {
	format := opts.Format
	if format == nil {
		format = defaultFormat
	}
	padding := opts.Padding
	if padding < 1 {
		padding = 1
	}

	rows := opts.RowOrder
	if rows == nil {
		rows = make([]string, 0, len(data))
		for r := range data {
			rows = append(rows, r)
		}
		sort.Strings(rows)
	}
	cols := opts.ColOrder
	if cols == nil && len(rows) > 0 {
		for c := range data[rows[0]] {
			cols = append(cols, c)
		}
		sort.Strings(cols)
	}

	// Column widths; the final slot is the row-key column.
	widths := make([]int, len(cols)+1)
	for i, c := range cols {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, r := range rows {
		widths[len(cols)] = max(widths[len(cols)], utf8.RuneCountInString(r))
		for i, c := range cols {
			widths[i] = max(widths[i], utf8.RuneCountInString(fmt.Sprint(data[r][c])))
		}
	}

	pad := strings.Repeat(" ", padding)
	var lines []string
	if opts.ShowHeader {
		cells := make([]string, 0, len(cols)+1)
		if s, ok := format("", widths[len(cols)], ""); ok {
			cells = append(cells, s)
		}
		for i, c := range cols {
			if s, ok := format(c, widths[i], c); ok {
				cells = append(cells, s)
			}
		}
		lines = append(lines, strings.Join(cells, pad))
	}
	for _, r := range rows {
		cells := make([]string, 0, len(cols)+1)
		if s, ok := format(r, widths[len(cols)], ""); ok {
			cells = append(cells, s)
		}
		for i, c := range cols {
			if s, ok := format(fmt.Sprint(data[r][c]), widths[i], c); ok {
				cells = append(cells, s)
			}
		}
		lines = append(lines, strings.Join(cells, pad))
	}
	return strings.Join(lines, "\n")
}

func defaultFormat(cell string, width int, col string) (string, bool) {
	if col == "" {
		return PadRight(cell, width), true
	}
	return PadLeft(cell, width), true
}

// ItemListFormat left-justifies every cell and drops the row-key column. It
// is the formatter used for the itemized ticket and pull-request lists.
func ItemListFormat(cell string, width int, col string) (string, bool) {
	if col == "" {
		return "", false
	}
	return PadRight(cell, width), true
}

// Heading returns the title underlined with dashes of the same length.
func Heading(title string) string {
	return title + "\n" + strings.Repeat("-", utf8.RuneCountInString(title))
}

// PadLeft right-justifies s in a field of width runes.
func PadLeft(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// PadRight left-justifies s in a field of width runes.
func PadRight(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
