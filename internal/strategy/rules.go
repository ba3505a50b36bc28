package strategy

import (
	"fmt"

	"SignalDesk/internal/model"
)

const (
	OversoldRSI   = 30.0
	OverboughtRSI = 70.0
)

// rule is one row of the classification table.
type rule struct {
	match  func(rsi, obvChange float64) bool
	signal model.Signal
	action string
}

// Rules is evaluated top to bottom; the first match wins.
var Rules = []rule{
	{
		match:  func(rsi, obv float64) bool { return rsi <= OversoldRSI && obv > 0 },
		signal: model.StrongBullish,
		action: "Oversold with increasing volume flow. Consider accumulating a position.",
	},
	{
		match:  func(rsi, obv float64) bool { return rsi <= OversoldRSI && obv <= 0 },
		signal: model.WeakBullish,
		action: "Oversold, but volume is not confirming a bounce yet. Monitor closely for reversal signs.",
	},
	{
		match:  func(rsi, obv float64) bool { return rsi >= OverboughtRSI && obv < 0 },
		signal: model.StrongBearish,
		action: "Overbought with negative volume divergence. Consider booking profits or initiating a cautious short.",
	},
	{
		match:  func(rsi, obv float64) bool { return rsi >= OverboughtRSI && obv >= 0 },
		signal: model.WeakBearish,
		action: "Overbought, but volume is still supporting the price. Maintain positions, but watch for a decline in volume.",
	},
	{
		match:  func(rsi, obv float64) bool { return rsi > OversoldRSI && rsi < OverboughtRSI && obv > 0 },
		signal: model.NeutralBullish,
		action: "RSI is neutral, but volume trend is positive. Suitable for holding or taking a small exploratory position, manage risk tightly.",
	},
	{
		match:  func(rsi, obv float64) bool { return rsi > OversoldRSI && rsi < OverboughtRSI && obv < 0 },
		signal: model.NeutralBearish,
		action: "RSI is neutral, but volume trend is negative. Avoid new entry, and be prepared to reduce existing positions.",
	},
	{
		match:  func(rsi, obv float64) bool { return rsi > OversoldRSI && rsi < OverboughtRSI && obv == 0 },
		signal: model.Neutral,
		action: neutralAction,
	},
}

const neutralAction = "No clear trend or strong momentum detected. Maintain patience, hold existing positions, and wait for confirmation."

// Classify maps the latest RSI and OBV change to a signal and suggested action.
// Inputs no row matches (NaN) fall back to Neutral.
func Classify(rsi, obvChange float64) (model.Signal, string) {
	for _, r := range Rules {
		if r.match(rsi, obvChange) {
			return r.signal, r.action
		}
	}
	return model.Neutral, neutralAction
}

// Commentary renders the deterministic one-line explanation of a signal.
func Commentary(rsi, obvChange float64, lookback int) string {
	zone := "Neutral"
	switch {
	case rsi <= OversoldRSI:
		zone = "Oversold"
	case rsi >= OverboughtRSI:
		zone = "Overbought"
	}
	trend := "flat"
	switch {
	case obvChange > 0:
		trend = "upwards"
	case obvChange < 0:
		trend = "downwards"
	}
	return fmt.Sprintf("RSI: %.2f (%s). OBV trend (%d days): %s.", rsi, zone, lookback, trend)
}
