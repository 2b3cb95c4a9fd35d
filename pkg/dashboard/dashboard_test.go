package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockreport/pkg/prices"
	"stockreport/pkg/revenue"
)

func sampleBars() []prices.Bar {
	return []prices.Bar{
		{Date: time.Date(2021, 9, 29, 0, 0, 0, 0, time.UTC), Close: 781.31},
		{Date: time.Date(2021, 9, 30, 0, 0, 0, 0, time.UTC), Close: 775.48},
	}
}

func sampleRevenue() revenue.Table {
	return revenue.Table{
		{Period: "2021-03-31", Revenue: decimal.NewFromInt(10389)},
		{Period: "2021-06-30", Revenue: decimal.NewFromInt(11958)},
	}
}

func TestBuildRendersBothPanels(t *testing.T) {
	page := Build("TSLA", sampleBars(), sampleRevenue())

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"TSLA Stock Price vs. Revenue",
		"TSLA Historical Close Price",
		"TSLA Quarterly Revenue",
		"2021-09-30",
		"2021-06-30",
		"775.48",
		"11958",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestBuildWithEmptyRevenue(t *testing.T) {
	// A ticker whose revenue scrape failed still gets a dashboard with
	// an empty bar panel.
	page := Build("GME", sampleBars(), revenue.Table{})

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "GME Quarterly Revenue") {
		t.Error("empty revenue should still render the bar panel title")
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.html")
	if err := WriteHTML(Build("TSLA", sampleBars(), sampleRevenue()), path); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "echarts") {
		t.Error("written file does not look like an echarts page")
	}
}

func TestWriteHTMLBadPath(t *testing.T) {
	err := WriteHTML(Build("TSLA", nil, nil), filepath.Join(t.TempDir(), "missing", "dash.html"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
