package recorder

import (
	"context"
	"time"

	"SignalDesk/internal/model"
)

// SignalRecord is one persisted evaluation.
type SignalRecord struct {
	ID              int64   `db:"id"`
	RunID           string  `db:"run_id"`
	CreatedAt       int64   `db:"created_at"`
	Ticker          string  `db:"ticker"`
	Price           float64 `db:"price"`
	RSI             float64 `db:"rsi"`
	OBVChange       float64 `db:"obv_change"`
	Signal          string  `db:"signal"`
	SuggestedAction string  `db:"suggested_action"`
	Commentary      string  `db:"commentary"`
	TriggerType     string  `db:"trigger_type"`
}

// NewSignalRecord builds a record from an engine result.
func NewSignalRecord(runID string, trigger model.TriggerType, res *model.SignalResult, at time.Time) *SignalRecord {
	return &SignalRecord{
		RunID:           runID,
		CreatedAt:       at.Unix(),
		Ticker:          res.Ticker,
		Price:           res.CurrentPrice,
		RSI:             res.RSI,
		OBVChange:       res.OBVChange,
		Signal:          res.Signal.String(),
		SuggestedAction: res.SuggestedAction,
		Commentary:      res.Commentary,
		TriggerType:     string(trigger),
	}
}

// ParsedSignal maps the stored label back to a Signal. Unknown labels read as Neutral.
func (r *SignalRecord) ParsedSignal() model.Signal {
	sig, err := model.ParseSignal(r.Signal)
	if err != nil {
		return model.Neutral
	}
	return sig
}

// Time returns the record timestamp.
func (r *SignalRecord) Time() time.Time { return time.Unix(r.CreatedAt, 0).UTC() }

// Recorder persists signal history.
type Recorder interface {
	RecordSignal(ctx context.Context, rec *SignalRecord) error
	RecentSignals(ctx context.Context, ticker string, limit int) ([]SignalRecord, error)
	Close() error
}
