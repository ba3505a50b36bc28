// Package chart shapes daily bars into chart payloads.
package chart

import (
	"fmt"
	"strings"
	"time"

	"SignalDesk/internal/calculator"
	"SignalDesk/internal/model"
)

const (
	// ChartWindow is the number of trailing bars shown on price/volume/DMA charts.
	ChartWindow = 180
	// CandleDays is the calendar-day window of the candle chart.
	CandleDays = 60
)

// DMAPeriods are the moving averages drawn on the DMA chart.
var DMAPeriods = []int{20, 50}

var dmaColors = map[int]string{20: "rgb(46, 204, 113)", 50: "rgb(255, 165, 0)"}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func labels(bars []model.OHLCV) []string {
	out := make([]string, len(bars))
	for i, b := range bars {
		out[i] = b.Time.Format("2006-01-02")
	}
	return out
}

func closes(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func volumes(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}

func tail[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// Price builds the filled close-price line chart over the trailing window.
func Price(ticker string, bars []model.OHLCV) model.ChartData {
	ticker = strings.ToUpper(ticker)
	window := tail(bars, ChartWindow)
	return model.ChartData{
		Labels: labels(window),
		Datasets: []model.Dataset{{
			Label:           fmt.Sprintf("%s Close Price", ticker),
			Data:            Sanitize(closes(window)),
			BackgroundColor: "rgba(0, 102, 204, 0.2)",
			BorderColor:     "rgb(0, 102, 204)",
			Fill:            boolPtr(true),
			Tension:         0.4,
			PointRadius:     intPtr(0),
		}},
	}
}

// Volume builds the volume bar chart over the trailing window.
func Volume(ticker string, bars []model.OHLCV) model.ChartData {
	ticker = strings.ToUpper(ticker)
	window := tail(bars, ChartWindow)
	return model.ChartData{
		Labels: labels(window),
		Datasets: []model.Dataset{{
			Label:           fmt.Sprintf("%s Volume", ticker),
			Data:            Sanitize(volumes(window)),
			BackgroundColor: "rgba(153, 102, 255, 0.8)",
			BorderColor:     "rgba(153, 102, 255, 1)",
			Type:            "bar",
		}},
	}
}

// DMA builds the moving-average chart. Averages are computed over the whole
// history before trimming, so the window starts with defined values when
// enough history exists.
func DMA(ticker string, bars []model.OHLCV) model.ChartData {
	ticker = strings.ToUpper(ticker)
	all := closes(bars)
	start := max(len(bars)-ChartWindow, 0)

	var datasets []model.Dataset
	for _, p := range DMAPeriods {
		ma := calculator.RoundSeries(calculator.SMASeries(all, p), 2)
		datasets = append(datasets, model.Dataset{
			Label:       fmt.Sprintf("%d-Day MA", p),
			Data:        Sanitize(ma[start:]),
			BorderColor: dmaColors[p],
			Fill:        boolPtr(false),
			Tension:     0.4,
			PointRadius: intPtr(0),
		})
	}
	datasets = append(datasets, model.Dataset{
		Label:       fmt.Sprintf("%s Price", ticker),
		Data:        Sanitize(all[start:]),
		BorderColor: "rgb(0, 102, 204)",
		Fill:        boolPtr(false),
		Tension:     0.4,
		BorderWidth: 1.5,
		PointRadius: intPtr(0),
	})
	return model.ChartData{Labels: labels(bars[start:]), Datasets: datasets}
}

// Candles builds OHLCV records with SMA5/SMA20 for bars dated after
// now-CandleDays. The SMAs only see bars inside that window, so the
// leading entries are null.
func Candles(symbol string, bars []model.OHLCV, now time.Time) model.CandleData {
	cutoff := now.AddDate(0, 0, -CandleDays)
	var window []model.OHLCV
	for _, b := range bars {
		if !b.Time.Before(cutoff) && b.Time.Before(now) {
			window = append(window, b)
		}
	}

	c := closes(window)
	sma5 := calculator.SMASeries(c, 5)
	sma20 := calculator.SMASeries(c, 20)

	records := make([]model.CandleRecord, len(window))
	for i, b := range window {
		records[i] = model.CandleRecord{
			Date:   b.Time.Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
			SMA5:   Float(sma5[i]),
			SMA20:  Float(sma20[i]),
		}
	}
	return model.CandleData{Symbol: symbol, Count: len(records), Data: records}
}
