// Package preview turns a raw comma-delimited payload into a table for
// display.
//
// The parser is naive: one record per line, fields split on
// every literal comma, no quoting and no escaping. A payload with commas or
// newlines inside a field is rendered with shifted columns. Rows longer than
// the header lose their surplus trailing cells; rows shorter than the header
// get empty cells.
package preview

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// TablePreview is the parsed form of a delimited-text file.
type TablePreview struct {
	Columns []string
	Rows    []map[string]string
}

// Empty reports whether the preview has no columns.
func (t TablePreview) Empty() bool { return len(t.Columns) == 0 }

// Parse splits text into a header row and data rows.
func Parse(text string) TablePreview {
	text = strings.TrimRightFunc(text, isSpace)
	if text == "" {
		return TablePreview{Columns: []string{}, Rows: []map[string]string{}}
	}

	lines := strings.Split(text, "\n")
	columns := strings.Split(strings.TrimRightFunc(lines[0], isSpace), ",")

	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := strings.Split(strings.TrimRightFunc(line, isSpace), ",")
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return TablePreview{Columns: columns, Rows: rows}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}

// Cells returns row's values in column order.
func (t TablePreview) Cells(row map[string]string) []string {
	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = row[col]
	}
	return cells
}

// Records returns every row as an ordered slice of cells.
func (t TablePreview) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = t.Cells(row)
	}
	return out
}

// SortBy returns a copy of t with rows ordered by column. Ordering is a
// stable string comparison; rows keep their relative order on ties.
// An unknown column returns an unsorted copy.
func (t TablePreview) SortBy(column string, desc bool) TablePreview {
	rows := make([]map[string]string, len(t.Rows))
	copy(rows, t.Rows)
	out := TablePreview{Columns: append([]string(nil), t.Columns...), Rows: rows}

	if !t.HasColumn(column) {
		return out
	}
	sort.SliceStable(out.Rows, func(i, j int) bool {
		if desc {
			return out.Rows[i][column] > out.Rows[j][column]
		}
		return out.Rows[i][column] < out.Rows[j][column]
	})
	return out
}

// Filter returns a copy of t holding only rows whose cells fuzzy-match
// query. Rows keep their original order. A blank query keeps every row.
func (t TablePreview) Filter(query string) TablePreview {
	out := TablePreview{Columns: append([]string(nil), t.Columns...)}
	query = strings.TrimSpace(query)
	if query == "" {
		out.Rows = append([]map[string]string(nil), t.Rows...)
		return out
	}

	haystack := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		haystack[i] = strings.Join(t.Cells(row), " ")
	}

	matches := fuzzy.Find(query, haystack)
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	sort.Ints(idx)

	out.Rows = make([]map[string]string, 0, len(idx))
	for _, i := range idx {
		out.Rows = append(out.Rows, t.Rows[i])
	}
	return out
}

// HasColumn reports whether name is a header of t.
func (t TablePreview) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
