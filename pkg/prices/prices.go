// Package prices fetches daily closing-price history for a ticker
// symbol. Only the date and close are retained from whichever provider
// serves the data.
package prices

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
)

// Bar is one daily observation: the trading date and closing price.
type Bar struct {
	Date  time.Time
	Close float64
}

// Provider returns the full available daily history for a symbol,
// oldest first.
type Provider interface {
	History(ctx context.Context, symbol string) ([]Bar, error)
}

// FromEnv selects a provider: Alpaca market data when API credentials
// are present in the environment, otherwise the keyless Yahoo chart
// endpoint.
func FromEnv(logger *zap.Logger) Provider {
	apiKey := os.Getenv("ALPACA_API_KEY")
	apiSecret := os.Getenv("ALPACA_SECRET_KEY")
	if apiKey != "" && apiSecret != "" {
		logger.Info("using alpaca market data provider")
		return NewAlpacaProvider(apiKey, apiSecret)
	}
	logger.Info("using yahoo chart provider")
	return NewYahooProvider(logger)
}
