package calculator

import (
	"fmt"

	"SignalDesk/internal/model"
)

// DefaultOBVLookback is the OBV trend window used when none is configured.
const DefaultOBVLookback = 20

// OBVSeries returns the running On-Balance-Volume, starting at 0 on the first bar.
func OBVSeries(bars []model.PriceBar) []float64 {
	if len(bars) == 0 {
		return nil
	}
	obv := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv[i] = obv[i-1] + bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv[i] = obv[i-1] - bars[i].Volume
		default:
			obv[i] = obv[i-1]
		}
	}
	return obv
}

// CalculateOBVChange returns OBV[last] - OBV[last-lookback].
func CalculateOBVChange(bars []model.PriceBar, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, fmt.Errorf("%w: obv lookback must be positive", ErrInvalidInput)
	}
	if len(bars) <= lookback {
		return 0, fmt.Errorf("%w: obv change over %d days needs %d bars, got %d", ErrInsufficientData, lookback, lookback+1, len(bars))
	}
	obv := OBVSeries(bars)
	last := len(obv) - 1
	return obv[last] - obv[last-lookback], nil
}
