package prices

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// AlpacaProvider serves daily history from the Alpaca market data API.
// Preferred over the scraping fallback when credentials are available.
type AlpacaProvider struct {
	md *marketdata.Client
}

func NewAlpacaProvider(apiKey, apiSecret string) *AlpacaProvider {
	return &AlpacaProvider{
		md: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
	}
}

// History fetches split-adjusted daily bars from the earliest date the
// API serves, keeping only date and close.
func (p *AlpacaProvider) History(ctx context.Context, symbol string) ([]Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := p.md.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Start:      time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		Adjustment: marketdata.Split,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars for %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("alpaca bars for %s: no data", symbol)
	}

	bars := make([]Bar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, Bar{Date: b.Timestamp.UTC(), Close: b.Close})
	}
	return bars, nil
}
