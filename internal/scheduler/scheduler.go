package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"SignalDesk/internal/calculator"
	"SignalDesk/internal/collector"
	"SignalDesk/internal/metrics"
	"SignalDesk/internal/model"
	"SignalDesk/internal/notifier"
	"SignalDesk/internal/recorder"
	"SignalDesk/internal/strategy"
)

const historyLimit = 10

// ErrScanRunning is returned when a scan is requested while another is in progress.
var ErrScanRunning = errors.New("a watchlist scan is already running")

// Sender delivers formatted messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron tasks and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *strategy.Engine
	Notifier  Sender
	Recorder  recorder.Recorder
	Watchlist []string
	Ctx       context.Context

	scanMu sync.Mutex
	now    func() time.Time
}

// ScanReport is the outcome of one watchlist scan.
type ScanReport struct {
	RunID    string
	Results  []*model.SignalResult
	Failures []notifier.ScanFailure
	At       time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *strategy.Engine, sender Sender, rec recorder.Recorder, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Engine:    eng,
		Notifier:  sender,
		Recorder:  rec,
		Watchlist: watchlist,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// RegisterAll registers the daily watchlist scan.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the daily scan immediately (RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Info().Int("tickers", len(s.Watchlist)).Msg("running daily scan")
	report, err := s.ScanWatchlist(s.Ctx, model.TriggerScheduled)
	if err != nil {
		log.Warn().Err(err).Msg("daily scan skipped")
		return
	}
	s.trySend(notifier.FormatDigest(report.RunID, report.Results, report.Failures, report.At))
}

// ScanWatchlist evaluates every watchlist ticker under one run ID. A failing
// ticker is logged and reported, the rest of the scan continues.
func (s *Scheduler) ScanWatchlist(ctx context.Context, trigger model.TriggerType) (*ScanReport, error) {
	if !s.scanMu.TryLock() {
		return nil, ErrScanRunning
	}
	defer s.scanMu.Unlock()

	report := &ScanReport{RunID: uuid.NewString(), At: s.now()}
	for _, ticker := range s.Watchlist {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		res, err := s.evaluate(ctx, ticker)
		if err != nil {
			log.Error().Err(err).Str("ticker", ticker).Str("run_id", report.RunID).Msg("scan ticker failed")
			report.Failures = append(report.Failures, notifier.ScanFailure{Ticker: ticker, Err: err})
			continue
		}
		s.record(ctx, report.RunID, trigger, res, report.At)
		report.Results = append(report.Results, res)
	}

	log.Info().
		Str("run_id", report.RunID).
		Int("ok", len(report.Results)).
		Int("failed", len(report.Failures)).
		Msg("watchlist scan complete")
	return report, nil
}

func (s *Scheduler) evaluate(ctx context.Context, ticker string) (*model.SignalResult, error) {
	series, err := s.Collector.Series(ctx, ticker)
	if err != nil {
		metrics.EvaluationErrors.WithLabelValues("fetch").Inc()
		return nil, err
	}
	res, err := s.Engine.Evaluate(series)
	if err != nil {
		stage := "evaluate"
		if errors.Is(err, calculator.ErrInsufficientData) {
			stage = "insufficient_data"
		}
		metrics.EvaluationErrors.WithLabelValues(stage).Inc()
		return nil, err
	}
	metrics.SignalsTotal.WithLabelValues(res.Ticker, res.Signal.String()).Inc()
	return res, nil
}

func (s *Scheduler) record(ctx context.Context, runID string, trigger model.TriggerType, res *model.SignalResult, at time.Time) {
	if err := s.Recorder.RecordSignal(ctx, recorder.NewSignalRecord(runID, trigger, res, at)); err != nil {
		metrics.EvaluationErrors.WithLabelValues("record").Inc()
		log.Error().Err(err).Str("ticker", res.Ticker).Msg("record signal")
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/signal@MyBot AAPL" in group chats
	name := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])
	arg := ""
	if len(fields) > 1 {
		arg = strings.ToUpper(fields[1])
	}

	switch name {
	case "/signal":
		if arg == "" {
			return "Usage: /signal &lt;TICKER&gt;"
		}
		res, err := s.evaluate(ctx, arg)
		if err != nil {
			return notifier.FormatError(arg, err)
		}
		s.record(ctx, uuid.NewString(), model.TriggerCommand, res, s.now())
		return notifier.FormatSignalReport(res, s.now())
	case "/scan":
		report, err := s.ScanWatchlist(ctx, model.TriggerCommand)
		if err != nil {
			return "⏳ " + err.Error()
		}
		return notifier.FormatDigest(report.RunID, report.Results, report.Failures, report.At)
	case "/history":
		if arg == "" {
			return "Usage: /history &lt;TICKER&gt;"
		}
		recs, err := s.Recorder.RecentSignals(ctx, arg, historyLimit)
		if err != nil {
			log.Error().Err(err).Str("ticker", arg).Msg("load history")
			return notifier.FormatError(arg, err)
		}
		return notifier.FormatHistory(arg, recs)
	case "/watchlist":
		return notifier.FormatWatchlist(s.Watchlist)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
