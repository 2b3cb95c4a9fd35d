// Command stockreport fetches historical share prices and quarterly
// revenue for Tesla and GameStop, writes CSV snapshots of each dataset,
// and renders a two-panel price/revenue dashboard per ticker.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stockreport/pkg/dashboard"
	"stockreport/pkg/prices"
	"stockreport/pkg/report"
	"stockreport/pkg/revenue"
)

const (
	headRows = 5
	tailRows = 5
)

// tickerJob describes one end-to-end pipeline: which symbol to fetch,
// where its revenue table lives, and the artifact names to produce.
type tickerJob struct {
	Symbol     string
	Name       string
	RevenueURL string
	HeadCSV    string
	TailCSV    string
	Dashboard  string
}

var jobs = []tickerJob{
	{
		Symbol:     "TSLA",
		Name:       "Tesla",
		RevenueURL: "https://www.macrotrends.net/stocks/charts/TSLA/tesla/revenue",
		HeadCSV:    "Q1_tesla_data_head.csv",
		TailCSV:    "Q2_tesla_revenue_tail.csv",
		Dashboard:  "Q5_tesla_dashboard",
	},
	{
		Symbol:     "GME",
		Name:       "GameStop",
		RevenueURL: "https://www.macrotrends.net/stocks/charts/GME/gamestop/revenue",
		HeadCSV:    "Q3_gme_data_head.csv",
		TailCSV:    "Q4_gme_revenue_tail.csv",
		Dashboard:  "Q6_gamestop_dashboard",
	},
}

func main() {
	os.Exit(run())
}

func run() int {
	outDir := flag.String("out", "outputs", "directory for CSV and dashboard artifacts")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall run deadline")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if err := report.EnsureOutputDir(*outDir); err != nil {
		logger.Error("output directory unusable, pass a writable path with -out", zap.Error(err))
		return 1
	}

	chromePath, chromeOK := dashboard.ChromeFound()
	if chromeOK {
		logger.Info("chrome found, PNG export enabled", zap.String("path", chromePath))
	} else {
		logger.Warn("no chrome binary on PATH, dashboards will be HTML only")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	provider := prices.FromEnv(logger)
	extractor := revenue.NewExtractor(logger)
	summary := report.NewSummary(*outDir)

	failed := false
	for _, job := range jobs {
		ts := runTicker(ctx, job, *outDir, provider, extractor, chromeOK, logger)
		summary.Add(ts)
		if len(ts.Errors) > 0 {
			failed = true
		}
	}

	if err := summary.Write(filepath.Join(*outDir, "run_summary.json")); err != nil {
		logger.Error("write run summary", zap.Error(err))
		failed = true
	}

	if failed {
		return 1
	}
	return 0
}

// runTicker executes one ticker's pipeline. Failures in one stage are
// recorded and the remaining stages run with whatever data exists, so
// one broken upstream never blanks the whole report.
func runTicker(ctx context.Context, job tickerJob, outDir string, provider prices.Provider, extractor *revenue.Extractor, chromeOK bool, logger *zap.Logger) report.TickerSummary {
	log := logger.With(zap.String("symbol", job.Symbol))
	ts := report.TickerSummary{Symbol: job.Symbol}

	bars, err := provider.History(ctx, job.Symbol)
	if err != nil {
		log.Error("fetch price history", zap.Error(err))
		ts.Errors = append(ts.Errors, fmt.Sprintf("price history: %v", err))
	}
	ts.PriceRows = len(bars)

	rev, err := extractor.FetchTable(ctx, job.RevenueURL)
	if err != nil {
		log.Error("fetch revenue table", zap.Error(err))
		ts.Errors = append(ts.Errors, fmt.Sprintf("revenue table: %v", err))
	}
	ts.RevenueRows = len(rev)

	headPath := filepath.Join(outDir, job.HeadCSV)
	if records, err := report.WritePriceHead(headPath, bars, headRows); err != nil {
		log.Error("write price head", zap.Error(err))
		ts.Errors = append(ts.Errors, fmt.Sprintf("price head csv: %v", err))
	} else {
		ts.Files = append(ts.Files, job.HeadCSV)
		printSnapshot(fmt.Sprintf("%s price data, first %d rows", job.Name, len(records)-1), records)
	}

	tailPath := filepath.Join(outDir, job.TailCSV)
	if records, err := report.WriteRevenueTail(tailPath, rev, tailRows); err != nil {
		log.Error("write revenue tail", zap.Error(err))
		ts.Errors = append(ts.Errors, fmt.Sprintf("revenue tail csv: %v", err))
	} else {
		ts.Files = append(ts.Files, job.TailCSV)
		printSnapshot(fmt.Sprintf("%s quarterly revenue, last %d rows", job.Name, len(records)-1), records)
	}

	htmlPath := filepath.Join(outDir, job.Dashboard+".html")
	page := dashboard.Build(job.Symbol, bars, rev)
	if err := dashboard.WriteHTML(page, htmlPath); err != nil {
		log.Error("write dashboard html", zap.Error(err))
		ts.Errors = append(ts.Errors, fmt.Sprintf("dashboard html: %v", err))
		return ts
	}
	ts.Files = append(ts.Files, job.Dashboard+".html")

	if !chromeOK {
		ts.Skipped = append(ts.Skipped, "dashboard_png")
		return ts
	}
	pngPath := filepath.Join(outDir, job.Dashboard+".png")
	if err := dashboard.WritePNG(ctx, htmlPath, pngPath); err != nil {
		// PNG export is best effort; the HTML dashboard already exists.
		log.Warn("png export failed, keeping HTML dashboard", zap.Error(err))
		ts.Skipped = append(ts.Skipped, "dashboard_png")
		return ts
	}
	ts.Files = append(ts.Files, job.Dashboard+".png")
	return ts
}

func printSnapshot(title string, records [][]string) {
	fmt.Printf("\n%s\n", title)
	for _, row := range records {
		fmt.Println(strings.Join(row, "\t"))
	}
}
