// Package dashboard renders the combined price/revenue chart for one
// ticker: a line panel of daily closes above a bar panel of revenue per
// period, sharing the horizontal date axis.
package dashboard

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"stockreport/pkg/prices"
	"stockreport/pkg/revenue"
)

const (
	chartWidth  = "1000px"
	chartHeight = "350px"
)

// Build assembles the two-panel dashboard page for a stock.
func Build(stock string, bars []prices.Bar, rev revenue.Table) *components.Page {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s Stock Price vs. Revenue", stock)
	page.SetLayout(components.PageCenterLayout)
	page.AddCharts(priceChart(stock, bars), revenueChart(stock, rev))
	return page
}

func priceChart(stock string, bars []prices.Bar) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s Historical Close Price", stock)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Close ($)"}),
	)

	dates := make([]string, len(bars))
	closes := make([]opts.LineData, len(bars))
	for i, b := range bars {
		dates[i] = b.Date.Format("2006-01-02")
		closes[i] = opts.LineData{Value: b.Close}
	}
	line.SetXAxis(dates).AddSeries(fmt.Sprintf("%s Close", stock), closes)
	return line
}

func revenueChart(stock string, rev revenue.Table) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s Quarterly Revenue", stock)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Revenue ($M)"}),
	)

	periods := make([]string, len(rev))
	amounts := make([]opts.BarData, len(rev))
	for i, r := range rev {
		periods[i] = r.Period
		amounts[i] = opts.BarData{Value: r.Revenue.InexactFloat64()}
	}
	bar.SetXAxis(periods).AddSeries(fmt.Sprintf("%s Revenue", stock), amounts)
	return bar
}

// WriteHTML renders the page as a self-contained interactive document.
func WriteHTML(page *components.Page, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dashboard html: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render dashboard html: %w", err)
	}
	return nil
}
