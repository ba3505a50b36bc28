package calculator

import (
	"time"

	"SignalDesk/internal/model"
)

var baseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func barsFrom(closes []float64, volume float64) []model.PriceBar {
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Date: baseDate.AddDate(0, 0, i), Close: c, Volume: volume}
	}
	return bars
}

func rising(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func falling(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 200 - float64(i)*1.5
	}
	return out
}
