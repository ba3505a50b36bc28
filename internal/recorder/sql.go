package recorder

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// SQLRecorder persists signal history to SQLite or Postgres.
type SQLRecorder struct {
	db *sqlx.DB
	mu sync.Mutex
}

// NewSQLRecorder opens (or creates) the database and runs migrations.
// driver is "sqlite" or "postgres".
func NewSQLRecorder(driver, dsn string) (*SQLRecorder, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	r := &SQLRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("driver", driver).Msg("signal recorder opened")
	return r, nil
}

func (r *SQLRecorder) migrate() error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.db.DriverName() == "postgres" {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_history (
			` + idColumn + `,
			run_id           TEXT NOT NULL,
			created_at       BIGINT NOT NULL,
			ticker           TEXT NOT NULL,
			price            DOUBLE PRECISION,
			rsi              DOUBLE PRECISION,
			obv_change       DOUBLE PRECISION,
			signal           TEXT,
			suggested_action TEXT,
			commentary       TEXT,
			trigger_type     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ticker_ts ON signal_history(ticker, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_run ON signal_history(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", strings.TrimSpace(s)[:40], err)
		}
	}
	return nil
}

func (r *SQLRecorder) RecordSignal(ctx context.Context, rec *SignalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO signal_history
		(run_id, created_at, ticker, price, rsi, obv_change, signal, suggested_action, commentary, trigger_type)
		VALUES (:run_id, :created_at, :ticker, :price, :rsi, :obv_change, :signal, :suggested_action, :commentary, :trigger_type)`,
		rec,
	)
	return err
}

// RecentSignals returns up to limit records for ticker, newest first.
func (r *SQLRecorder) RecentSignals(ctx context.Context, ticker string, limit int) ([]SignalRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []SignalRecord
	q := r.db.Rebind(`SELECT id, run_id, created_at, ticker, price, rsi, obv_change,
		signal, suggested_action, commentary, trigger_type
		FROM signal_history WHERE ticker = ? ORDER BY created_at DESC, id DESC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &out, q, strings.ToUpper(ticker), limit); err != nil {
		return nil, fmt.Errorf("select recent signals: %w", err)
	}
	return out, nil
}

// RunSignals returns every record of one scan run.
func (r *SQLRecorder) RunSignals(ctx context.Context, runID string) ([]SignalRecord, error) {
	var out []SignalRecord
	q := r.db.Rebind(`SELECT id, run_id, created_at, ticker, price, rsi, obv_change,
		signal, suggested_action, commentary, trigger_type
		FROM signal_history WHERE run_id = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &out, q, runID); err != nil {
		return nil, fmt.Errorf("select run signals: %w", err)
	}
	return out, nil
}

func (r *SQLRecorder) Close() error {
	log.Info().Msg("closing signal recorder")
	return r.db.Close()
}
