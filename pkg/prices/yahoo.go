package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
)

const (
	yahooBaseURL   = "https://query1.finance.yahoo.com"
	yahooUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	maxBodyBytes   = 10 * 1024 * 1024
)

// chartResponse mirrors the Yahoo Finance v8 chart payload, reduced to
// the fields this tool consumes.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamps []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooProvider fetches maximum-range daily history from the public
// chart endpoint. No credentials required.
type YahooProvider struct {
	Client  *http.Client
	Logger  *zap.Logger
	BaseURL string
}

func NewYahooProvider(logger *zap.Logger) *YahooProvider {
	return &YahooProvider{
		Client:  &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
		BaseURL: yahooBaseURL,
	}
}

// History returns every available daily bar for symbol, keeping only
// date and close. Bars with a null close are skipped.
func (p *YahooProvider) History(ctx context.Context, symbol string) ([]Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=max&interval=1d", p.BaseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chart for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read chart for %s: %w", symbol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch chart for %s: HTTP %d", symbol, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		// Some upstreams ship sloppy JSON; try a repair pass before
		// giving up.
		repaired, repairErr := jsonrepair.JSONRepair(string(body))
		if repairErr != nil {
			return nil, fmt.Errorf("decode chart for %s: %w", symbol, err)
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			return nil, fmt.Errorf("decode chart for %s: %w", symbol, err)
		}
		p.Logger.Warn("chart payload needed JSON repair", zap.String("symbol", symbol))
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart for %s: %s: %s",
			symbol, payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart for %s: no data", symbol)
	}

	result := payload.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	bars := make([]Bar, 0, len(closes))
	for i, c := range closes {
		if c == nil || i >= len(result.Timestamps) {
			continue
		}
		bars = append(bars, Bar{
			Date:  time.Unix(result.Timestamps[i], 0).UTC(),
			Close: *c,
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("chart for %s: empty close series", symbol)
	}
	return bars, nil
}
