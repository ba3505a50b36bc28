package calculator

import (
	"fmt"
	"math"

	"SignalDesk/internal/model"
)

// DefaultRSIPeriod is the RSI window used when none is configured.
const DefaultRSIPeriod = 14

// RSISeries computes RSI for every bar using a simple rolling mean of gains
// and losses over `period` deltas (not Wilder smoothing). The first `period`
// entries are NaN. avgLoss == 0 yields 100, or 50 when avgGain is also 0.
func RSISeries(bars []model.PriceBar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: rsi period must be positive", ErrInvalidInput)
	}
	if len(bars) < period+1 {
		return nil, fmt.Errorf("%w: rsi(%d) needs %d bars, got %d", ErrInsufficientData, period, period+1, len(bars))
	}

	n := len(bars)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	out := make([]float64, n)
	for i := 0; i < period; i++ {
		out[i] = math.NaN()
	}
	for i := period; i < n; i++ {
		var sumGain, sumLoss float64
		for j := i - period + 1; j <= i; j++ {
			sumGain += gains[j]
			sumLoss += losses[j]
		}
		out[i] = rsiFromAverages(sumGain/float64(period), sumLoss/float64(period))
	}
	return out, nil
}

// CalculateRSI returns the latest RSI value of the series.
func CalculateRSI(bars []model.PriceBar, period int) (float64, error) {
	series, err := RSISeries(bars, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
