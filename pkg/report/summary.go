package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/pretty"
)

// TickerSummary records what one ticker pipeline produced.
type TickerSummary struct {
	Symbol      string   `json:"symbol"`
	PriceRows   int      `json:"price_rows"`
	RevenueRows int      `json:"revenue_rows"`
	Files       []string `json:"files"`
	Skipped     []string `json:"skipped,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// Summary describes a full run for run_summary.json.
type Summary struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	OutputDir  string          `json:"output_dir"`
	Tickers    []TickerSummary `json:"tickers"`
}

// NewSummary starts a summary for a run, stamped with a fresh run id.
func NewSummary(outputDir string) *Summary {
	return &Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		OutputDir: outputDir,
	}
}

// Add appends one ticker's outcome.
func (s *Summary) Add(ts TickerSummary) {
	s.Tickers = append(s.Tickers, ts)
}

// Write finalizes the summary and writes it, pretty-printed, to path.
func (s *Summary) Write(path string) error {
	s.FinishedAt = time.Now().UTC()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	if err := os.WriteFile(path, pretty.Pretty(data), 0o644); err != nil {
		return fmt.Errorf("write run summary: %w", err)
	}
	return nil
}
