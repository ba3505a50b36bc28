package calculator

import (
	"fmt"
	"math"

	"SignalDesk/internal/model"
)

const dateKey = "2006-01-02"

// ValidateBars rejects non-finite closes or volumes, negative volumes and
// dates that do not strictly increase by calendar day.
func ValidateBars(bars []model.PriceBar) error {
	for i, b := range bars {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			return fmt.Errorf("%w: bar %d has non-finite close", ErrInvalidInput, i)
		}
		if math.IsNaN(b.Volume) || math.IsInf(b.Volume, 0) {
			return fmt.Errorf("%w: bar %d has non-finite volume", ErrInvalidInput, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d has negative volume %.0f", ErrInvalidInput, i, b.Volume)
		}
		if i == 0 {
			continue
		}
		prev := bars[i-1].Date
		if !b.Date.After(prev) || b.Date.Format(dateKey) == prev.Format(dateKey) {
			return fmt.Errorf("%w: bar %d date %s not after %s", ErrInvalidInput, i,
				b.Date.Format(dateKey), prev.Format(dateKey))
		}
	}
	return nil
}
