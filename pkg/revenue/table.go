// Package revenue extracts quarterly revenue tables from financial-data
// web pages and normalizes them into a two-column (period, amount) form.
package revenue

import (
	"github.com/shopspring/decimal"
)

// Canonical column names of a cleaned table.
const (
	ColDate    = "Date"
	ColRevenue = "Revenue"
)

// RawTable is an untyped grid of cell texts as scraped from an HTML
// table. Columns may be nil when the page gave no usable header, or
// when the header cell count did not match the extracted column count;
// rows may be ragged.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// width is the number of columns spanned by the widest row.
func (t *RawTable) width() int {
	w := 0
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// cell returns the trimmed-as-scraped cell text, or "" past row bounds.
func (t *RawTable) cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// hasColumn reports whether any column name contains sub (lower-cased
// comparison). Positional tables have no names and never match.
func (t *RawTable) hasColumn(sub string) bool {
	return findColumn(t.Columns, []string{sub}, -1) >= 0
}

// Record is one normalized revenue observation. Period is either
// YYYY, YYYY-MM, or YYYY-MM-DD when the scraped cell contained such a
// pattern, otherwise the original cell text. Revenue is always a
// finite, non-negative amount.
type Record struct {
	Period  string
	Revenue decimal.Decimal
}

// Table is an ordered sequence of revenue records in page order.
type Table []Record
