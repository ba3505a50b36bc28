package strategy

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"SignalDesk/internal/calculator"
	"SignalDesk/internal/model"
)

// Engine turns a daily price series into an advisory signal. It holds only
// its window parameters and is safe for concurrent use.
type Engine struct {
	RSIPeriod   int
	OBVLookback int
}

// NewEngine creates an Engine. Non-positive periods fall back to
// calculator.DefaultRSIPeriod (14) and calculator.DefaultOBVLookback (20).
func NewEngine(rsiPeriod, obvLookback int) *Engine {
	if rsiPeriod <= 0 {
		rsiPeriod = calculator.DefaultRSIPeriod
	}
	if obvLookback <= 0 {
		obvLookback = calculator.DefaultOBVLookback
	}
	return &Engine{RSIPeriod: rsiPeriod, OBVLookback: obvLookback}
}

// MinBars is the shortest series Evaluate accepts.
func (e *Engine) MinBars() int {
	return max(e.RSIPeriod+1, e.OBVLookback+1)
}

// Evaluate computes RSI and OBV change for the series and classifies them.
// It returns either a complete result or a single error wrapping
// calculator.ErrInvalidInput or calculator.ErrInsufficientData.
func (e *Engine) Evaluate(series model.PriceSeries) (*model.SignalResult, error) {
	ticker := strings.ToUpper(strings.TrimSpace(series.Ticker))

	if err := calculator.ValidateBars(series.Bars); err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}
	if n := series.Len(); n < e.MinBars() {
		return nil, fmt.Errorf("%s: %w: need %d bars, got %d", ticker, calculator.ErrInsufficientData, e.MinBars(), n)
	}

	rsi, err := calculator.CalculateRSI(series.Bars, e.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("%s: rsi: %w", ticker, err)
	}
	obvChange, err := calculator.CalculateOBVChange(series.Bars, e.OBVLookback)
	if err != nil {
		return nil, fmt.Errorf("%s: obv: %w", ticker, err)
	}

	sig, action := Classify(rsi, obvChange)
	result := &model.SignalResult{
		Ticker:          ticker,
		CurrentPrice:    series.Bars[series.Len()-1].Close,
		RSI:             rsi,
		OBVChange:       obvChange,
		Signal:          sig,
		SuggestedAction: action,
		Commentary:      Commentary(rsi, obvChange, e.OBVLookback),
	}

	log.Debug().
		Str("ticker", ticker).
		Float64("rsi", rsi).
		Float64("obv_change", obvChange).
		Str("signal", sig.String()).
		Msg("signal evaluated")
	return result, nil
}
