package calculator

import (
	"math"

	"github.com/markcheno/go-talib"
	"github.com/shopspring/decimal"
)

// SMASeries returns the rolling simple moving average aligned with prices.
// The first period-1 entries, or all of them when the series is too short, are NaN.
func SMASeries(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	if period <= 0 || len(prices) < period {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	copy(out, talib.Sma(prices, period))
	for i := 0; i < period-1; i++ {
		out[i] = math.NaN()
	}
	return out
}

// RoundSeries rounds every finite value to `places` decimals and leaves NaN/Inf untouched.
func RoundSeries(values []float64, places int32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = v
			continue
		}
		out[i] = decimal.NewFromFloat(v).Round(places).InexactFloat64()
	}
	return out
}
