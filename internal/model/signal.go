package model

import "fmt"

// Signal is the advisory verdict derived from RSI and OBV trend.
type Signal int

const (
	Neutral Signal = iota
	StrongBullish
	WeakBullish
	StrongBearish
	WeakBearish
	NeutralBullish
	NeutralBearish
)

// AllSignals lists every Signal variant.
var AllSignals = []Signal{
	StrongBullish, WeakBullish, StrongBearish, WeakBearish,
	NeutralBullish, NeutralBearish, Neutral,
}

var signalLabels = map[Signal]string{
	StrongBullish:  "Strong Bullish",
	WeakBullish:    "Bullish (Weak)",
	StrongBearish:  "Strong Bearish",
	WeakBearish:    "Bearish (Weak)",
	NeutralBullish: "Neutral to Bullish",
	NeutralBearish: "Neutral to Bearish",
	Neutral:        "Neutral",
}

// String returns the display label, e.g. "Strong Bullish".
func (s Signal) String() string {
	if l, ok := signalLabels[s]; ok {
		return l
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

// MarshalText encodes the signal as its display label.
func (s Signal) MarshalText() ([]byte, error) {
	if _, ok := signalLabels[s]; !ok {
		return nil, fmt.Errorf("unknown signal %d", int(s))
	}
	return []byte(s.String()), nil
}

// ParseSignal maps a display label back to its Signal.
func ParseSignal(label string) (Signal, error) {
	for sig, l := range signalLabels {
		if l == label {
			return sig, nil
		}
	}
	return Neutral, fmt.Errorf("unknown signal label %q", label)
}

// Bullish reports whether the signal leans long.
func (s Signal) Bullish() bool {
	return s == StrongBullish || s == WeakBullish || s == NeutralBullish
}

// Bearish reports whether the signal leans short.
func (s Signal) Bearish() bool {
	return s == StrongBearish || s == WeakBearish || s == NeutralBearish
}

// SignalResult is the engine's output for one ticker.
type SignalResult struct {
	Ticker          string  `json:"ticker"`
	CurrentPrice    float64 `json:"current_price"`
	RSI             float64 `json:"rsi"`
	OBVChange       float64 `json:"obv_change"`
	Signal          Signal  `json:"signal"`
	SuggestedAction string  `json:"suggested_action"`
	Commentary      string  `json:"commentary"`
}

// TriggerType indicates what produced a recorded signal.
type TriggerType string

const (
	TriggerScheduled TriggerType = "SCHEDULED"
	TriggerCommand   TriggerType = "COMMAND"
	TriggerManual    TriggerType = "MANUAL"
)
