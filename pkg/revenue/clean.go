package revenue

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Column-role detection is an explicit rule list: for each role, the
// first column whose lower-cased name contains one of the substrings
// wins; the fallback index applies when no column qualifies.
var (
	dateColumnRules    = []string{"date", "period"}
	revenueColumnRules = []string{"revenue"}
)

// currencyReplacer strips the dollar sign and thousands separators
// before numeric conversion.
var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// periodPattern matches a 4-digit year optionally followed by -MM or
// -MM-DD. Alternatives are ordered longest first so the full date wins
// when present; the leftmost match in the cell is used.
var periodPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{4}-\d{2}|\d{4}`)

// findColumn returns the index of the first column whose name contains
// any of the given substrings, or fallback when none does.
func findColumn(columns []string, substrings []string, fallback int) int {
	for i, name := range columns {
		lower := strings.ToLower(name)
		for _, sub := range substrings {
			if strings.Contains(lower, sub) {
				return i
			}
		}
	}
	return fallback
}

// Clean normalizes a raw scraped table into a revenue Table. It never
// fails: malformed rows are dropped, and a nil or empty input yields an
// empty table. Row order is preserved.
//
// The date-like column is the first whose name contains "date" or
// "period" (default: column 0); the revenue-like column is the first
// whose name contains "revenue" (default: column 1, or 0 for a
// single-column table). All other columns are discarded. Revenue cells
// are stripped of "$" and "," and must convert to a non-negative
// number; date cells are reduced to the leftmost YYYY[-MM[-DD]]
// pattern when one exists.
func Clean(raw *RawTable) Table {
	table := Table{}
	if raw == nil || len(raw.Rows) == 0 {
		return table
	}

	dateIdx := findColumn(raw.Columns, dateColumnRules, 0)
	revenueIdx := findColumn(raw.Columns, revenueColumnRules, 1)
	if raw.width() < 2 {
		revenueIdx = findColumn(raw.Columns, revenueColumnRules, 0)
	}

	for i := range raw.Rows {
		period := strings.TrimSpace(raw.cell(i, dateIdx))
		amount := strings.TrimSpace(currencyReplacer.Replace(raw.cell(i, revenueIdx)))
		if period == "" && amount == "" {
			continue
		}
		if amount == "" {
			continue
		}
		value, err := decimal.NewFromString(amount)
		if err != nil || value.IsNegative() {
			continue
		}
		if m := periodPattern.FindString(period); m != "" {
			period = m
		}
		table = append(table, Record{Period: period, Revenue: value})
	}
	return table
}
