package model

import (
	"strings"
	"time"
)

// OHLCV represents a single candlestick bar as returned by a market-data source.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceBar is the close/volume pair the signal engine works on.
type PriceBar struct {
	Date   time.Time
	Close  float64
	Volume float64
}

// PriceSeries is an ascending, duplicate-free sequence of daily bars for one ticker.
type PriceSeries struct {
	Ticker    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int { return len(s.Bars) }

// ToPriceSeries projects raw OHLCV bars onto a PriceSeries for ticker.
func ToPriceSeries(ticker string, bars []OHLCV, fetchedAt time.Time) PriceSeries {
	out := make([]PriceBar, len(bars))
	for i, b := range bars {
		out[i] = PriceBar{Date: b.Time, Close: b.Close, Volume: b.Volume}
	}
	return PriceSeries{
		Ticker:    strings.ToUpper(strings.TrimSpace(ticker)),
		Bars:      out,
		FetchedAt: fetchedAt,
	}
}
