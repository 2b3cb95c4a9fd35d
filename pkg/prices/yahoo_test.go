package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

const chartFixture = `{
	"chart": {
		"result": [{
			"timestamp": [1277769600, 1277856000, 1277942400],
			"indicators": {
				"quote": [{"close": [4.778, null, 4.392]}]
			}
		}],
		"error": null
	}
}`

func yahooForTest(t *testing.T, handler http.HandlerFunc) (*YahooProvider, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	p := NewYahooProvider(zap.NewNop())
	p.BaseURL = srv.URL
	return p, srv.Close
}

func TestYahooHistory(t *testing.T) {
	p, done := yahooForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/TSLA") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("range") != "max" {
			t.Errorf("range = %q, want max", r.URL.Query().Get("range"))
		}
		w.Write([]byte(chartFixture))
	})
	defer done()

	bars, err := p.History(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	// The null close must be skipped.
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if got := bars[0].Date; !got.Equal(time.Unix(1277769600, 0).UTC()) {
		t.Errorf("first bar date = %v", got)
	}
	if bars[0].Close != 4.778 || bars[1].Close != 4.392 {
		t.Errorf("closes = %v, %v", bars[0].Close, bars[1].Close)
	}
}

func TestYahooHistoryRepairsSloppyJSON(t *testing.T) {
	// Trailing comma: invalid for encoding/json, recoverable via the
	// repair pass.
	sloppy := strings.Replace(chartFixture, `"error": null`, `"error": null,`, 1)
	p, done := yahooForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sloppy))
	})
	defer done()

	bars, err := p.History(context.Background(), "GME")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(bars) != 2 {
		t.Errorf("got %d bars, want 2", len(bars))
	}
}

func TestYahooHistoryHTTPError(t *testing.T) {
	p, done := yahooForTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer done()

	if _, err := p.History(context.Background(), "TSLA"); err == nil {
		t.Fatal("expected error on HTTP 429")
	}
}

func TestYahooHistoryProviderError(t *testing.T) {
	p, done := yahooForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	})
	defer done()

	_, err := p.History(context.Background(), "NOPE")
	if err == nil || !strings.Contains(err.Error(), "Not Found") {
		t.Fatalf("err = %v, want provider error surfaced", err)
	}
}

func TestFromEnvDefaultsToYahoo(t *testing.T) {
	t.Setenv("ALPACA_API_KEY", "")
	t.Setenv("ALPACA_SECRET_KEY", "")
	if _, ok := FromEnv(zap.NewNop()).(*YahooProvider); !ok {
		t.Error("FromEnv without credentials should pick the yahoo provider")
	}

	t.Setenv("ALPACA_API_KEY", "key")
	t.Setenv("ALPACA_SECRET_KEY", "secret")
	if _, ok := FromEnv(zap.NewNop()).(*AlpacaProvider); !ok {
		t.Error("FromEnv with credentials should pick the alpaca provider")
	}
}
