package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"SignalDesk/internal/metrics"
	"SignalDesk/internal/model"
)

// Collector fetches daily history for tickers.
type Collector struct {
	Fetcher     Fetcher
	HistoryDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays int) *Collector {
	if historyDays <= 0 {
		historyDays = 250
	}
	return &Collector{Fetcher: fetcher, HistoryDays: historyDays}
}

// Bars fetches `days` daily OHLCV bars for ticker.
func (c *Collector) Bars(ctx context.Context, ticker string, days int) ([]model.OHLCV, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	start := time.Now()
	bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, days)
	metrics.FetchDuration.WithLabelValues(c.Fetcher.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("could not fetch data for ticker: %s", ticker)
	}
	log.Debug().Str("ticker", ticker).Int("bars", len(bars)).Str("source", c.Fetcher.Name()).Msg("bars fetched")
	return bars, nil
}

// Series fetches the configured history for ticker as a PriceSeries.
func (c *Collector) Series(ctx context.Context, ticker string) (model.PriceSeries, error) {
	bars, err := c.Bars(ctx, ticker, c.HistoryDays)
	if err != nil {
		return model.PriceSeries{}, err
	}
	return model.ToPriceSeries(ticker, bars, time.Now()), nil
}
