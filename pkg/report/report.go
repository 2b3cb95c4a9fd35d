// Package report writes the per-ticker artifacts of a run: head/tail
// CSV snapshots of the fetched data and a machine-readable summary of
// what the run produced.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"stockreport/pkg/prices"
	"stockreport/pkg/revenue"
)

// EnsureOutputDir creates the output directory and verifies it is
// writable by touching a probe file.
func EnsureOutputDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", path, err)
	}
	probe, err := os.CreateTemp(path, ".probe-*")
	if err != nil {
		return fmt.Errorf("output dir %s is not writable: %w", path, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WritePriceHead snapshots the first n price bars to a CSV file and
// returns the records written, header row included.
func WritePriceHead(path string, bars []prices.Bar, n int) ([][]string, error) {
	if n > len(bars) {
		n = len(bars)
	}
	records := make([][]string, 0, n+1)
	records = append(records, []string{"Date", "Close"})
	for _, b := range bars[:n] {
		records = append(records, []string{
			b.Date.Format("2006-01-02"),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
		})
	}
	if err := writeCSV(path, records); err != nil {
		return nil, err
	}
	return records, nil
}

// WriteRevenueTail snapshots the last n revenue records to a CSV file
// and returns the records written, header row included.
func WriteRevenueTail(path string, table revenue.Table, n int) ([][]string, error) {
	if n > len(table) {
		n = len(table)
	}
	records := make([][]string, 0, n+1)
	records = append(records, []string{revenue.ColDate, revenue.ColRevenue})
	for _, r := range table[len(table)-n:] {
		records = append(records, []string{r.Period, r.Revenue.String()})
	}
	if err := writeCSV(path, records); err != nil {
		return nil, err
	}
	return records, nil
}
